package weather

import (
	"fmt"
	"time"

	apperrors "github.com/yanqian/forecast-advisor/pkg/errors"
)

func missingHour(t time.Time) error {
	return apperrors.Wrap(apperrors.CodeMissingData, fmt.Sprintf("no hourly forecast entry for %s", t.Format("2006-01-02T15:04")), nil)
}

func missingDay(t time.Time) error {
	return apperrors.Wrap(apperrors.CodeMissingData, fmt.Sprintf("no daily forecast entry for %s", t.Format("2006-01-02")), nil)
}

// IsMissingData reports whether err signals a timestamp the series does not cover.
func IsMissingData(err error) bool {
	return apperrors.IsCode(err, apperrors.CodeMissingData)
}

// IsPrecondition reports whether err signals a series too short for the requested span.
func IsPrecondition(err error) bool {
	return apperrors.IsCode(err, apperrors.CodePreconditionFailed)
}
