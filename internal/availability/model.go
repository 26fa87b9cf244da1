package availability

import (
	"net/http"
	"time"

	"github.com/openbookings/appointment-backend/internal/localtime"
	"github.com/openbookings/appointment-backend/internal/pkg/apperror"
)

var (
	ErrRuleNotFound      = apperror.New(http.StatusNotFound, "RuleNotFound", "availability rule not found")
	ErrRuleAlreadyExists = apperror.New(http.StatusConflict, "RuleAlreadyExists", "an availability rule already exists for this weekday")
	ErrInvalidRuleTimes  = apperror.New(http.StatusBadRequest, "ValidationError", "rule end time must be after start time")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "ValidationError", "from must not be after to")
	ErrDateRangeTooWide  = apperror.New(http.StatusBadRequest, "DateRangeTooWide", "date range must not exceed 14 days")
)

// Rule declares a weekly recurring window in which an owner accepts
// bookings, carved into fixed-length slots. An owner holds at most one rule
// per weekday. Start and End are wall-clock times interpreted in Timezone on
// each matching calendar day.
type Rule struct {
	ID        string
	OwnerID   string
	Weekday   time.Weekday
	Start     localtime.TimeOfDay
	End       localtime.TimeOfDay
	Interval  time.Duration
	Timezone  string
	CreatedAt time.Time
}
