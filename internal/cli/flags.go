package cli

import (
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/spf13/pflag"
)

// statusFlag is a --status value validated at parse time, so a typo fails
// before any database work.
type statusFlag struct {
	status domain.PlanStatus
}

var _ pflag.Value = (*statusFlag)(nil)

func (f *statusFlag) String() string { return string(f.status) }

func (f *statusFlag) Set(s string) error {
	st, err := domain.ParsePlanStatus(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	f.status = st
	return nil
}

func (f *statusFlag) Type() string { return "status" }

// statusUsage lists the accepted --status values.
func statusUsage(prefix string) string {
	names := make([]string, len(domain.ValidPlanStatuses))
	for i, s := range domain.ValidPlanStatuses {
		names[i] = string(s)
	}
	return prefix + " (" + strings.Join(names, ", ") + ")"
}
