package es

import (
	"errors"
	"fmt"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/arxlib/searchd/internal/domain"
)

// faultType extracts the backend's error type string, if any.
func faultType(err error) string {
	var ee *elastic.Error
	if errors.As(err, &ee) && ee.Details != nil {
		return ee.Details.Type
	}
	return ""
}

// translate maps a backend fault onto the domain error taxonomy. A
// parsing_exception means the compiled query was rejected as malformed; a
// mapper_parsing_exception means the index schema does not match.
// Unrecognized faults are logged and propagated as connection errors,
// never swallowed.
func (s *Store) translate(err error) error {
	switch t := faultType(err); t {
	case "parsing_exception":
		return fmt.Errorf("%w: backend rejected query: %v", domain.ErrInvalidQuery, err)
	case "mapper_parsing_exception":
		return fmt.Errorf("%w: %v", domain.ErrMapping, err)
	case "":
		// No structured fault: a transport-level failure.
		return fmt.Errorf("%w: %v", domain.ErrIndexConnection, err)
	default:
		s.logger.Error("unhandled backend fault",
			zap.String("type", t),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s: %v", domain.ErrIndexConnection, t, err)
	}
}
