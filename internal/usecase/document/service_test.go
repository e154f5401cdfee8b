package document

import (
	"context"
	"errors"
	"testing"

	"github.com/arxlib/searchd/internal/domain"
	domdoc "github.com/arxlib/searchd/internal/domain/document"
)

type mockRepo struct {
	getCalls  int
	addCalls  int
	bulkCalls int
	doc       domdoc.Document
	err       error
}

func (m *mockRepo) Get(_ context.Context, _ string) (domdoc.Document, error) {
	m.getCalls++
	return m.doc, m.err
}

func (m *mockRepo) Add(_ context.Context, _ *domdoc.Document) error {
	m.addCalls++
	return m.err
}

func (m *mockRepo) BulkAdd(_ context.Context, _ []domdoc.Document) error {
	m.bulkCalls++
	return m.err
}

func TestGet(t *testing.T) {
	repo := &mockRepo{doc: domdoc.Document{PaperID: "2301.00001"}}
	svc := New(repo)

	doc, err := svc.Get(context.Background(), "2301.00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PaperID != "2301.00001" {
		t.Errorf("paper_id = %q", doc.PaperID)
	}
}

func TestGet_EmptyID(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	_, err := svc.Get(context.Background(), "")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("error = %v, want ErrDocumentNotFound", err)
	}
	if repo.getCalls != 0 {
		t.Errorf("repo calls = %d, want 0", repo.getCalls)
	}
}

func TestAdd_RejectsDocumentWithoutKey(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	for _, doc := range []*domdoc.Document{nil, {}} {
		if err := svc.Add(context.Background(), doc); !errors.Is(err, domain.ErrIndexing) {
			t.Errorf("Add(%v) error = %v, want ErrIndexing", doc, err)
		}
	}
	if repo.addCalls != 0 {
		t.Errorf("repo calls = %d, want 0", repo.addCalls)
	}
}

func TestAdd(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if err := svc.Add(context.Background(), &domdoc.Document{PaperID: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.addCalls != 1 {
		t.Errorf("repo calls = %d, want 1", repo.addCalls)
	}
}

func TestBulkAdd_EmptyBatchIsNoop(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if err := svc.BulkAdd(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.bulkCalls != 0 {
		t.Errorf("repo calls = %d, want 0", repo.bulkCalls)
	}
}

func TestBulkAdd_RejectsBatchWithKeylessDocument(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	docs := []domdoc.Document{{PaperID: "a"}, {}}
	err := svc.BulkAdd(context.Background(), docs)
	if !errors.Is(err, domain.ErrIndexing) {
		t.Fatalf("error = %v, want ErrIndexing", err)
	}
	if repo.bulkCalls != 0 {
		t.Errorf("repo calls = %d, want 0: the whole batch is rejected", repo.bulkCalls)
	}
}

func TestBulkAdd(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	docs := []domdoc.Document{{PaperID: "a"}, {PaperID: "b"}}
	if err := svc.BulkAdd(context.Background(), docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.bulkCalls != 1 {
		t.Errorf("repo calls = %d, want 1", repo.bulkCalls)
	}
}
