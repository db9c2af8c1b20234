package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"absencehub/internal/i18n"
	"absencehub/internal/validation"
)

var (
	draft        validation.Draft
	allowedTypes []string
	validateLang string
)

var errInvalidDraft = errors.New("absence is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an absence offline",
	Long: `Runs the form rules against the given absence without a database.

Example:
  absencehub validate --account s.john.doe --type Urlaub --start 2025-01-06 --end 2025-01-10`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	f := validateCmd.Flags()
	f.StringVar(&draft.ServiceAccount, "account", "", "service account (s.firstname.lastname)")
	f.StringVar(&draft.EmployeeFullname, "name", "", "employee full name")
	f.StringVar(&draft.AbsenceType, "type", "", "absence type")
	f.StringVar(&draft.StartDate, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&draft.EndDate, "end", "", "end date (YYYY-MM-DD)")
	f.BoolVar(&draft.IsHalfDay, "half-day", false, "half-day absence on the start date")
	f.StringSliceVar(&allowedTypes, "allowed", nil, "allowed absence types (default: built-in types)")
	f.StringVar(&validateLang, "lang", "", "message language (default: DEFAULT_LANGUAGE)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	lang := validateLang
	if lang == "" {
		lang = cfg.DefaultLanguage
	}

	res := validation.ValidateAbsenceForm(draft, allowedTypes)
	if res.Valid() {
		d := validation.ReconcileHalfDay(draft)
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s %s %s..%s\n", d.ServiceAccount, d.AbsenceType, d.StartDate, d.EndDate)
		return nil
	}

	fields := make([]string, 0, len(res))
	for f := range res {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		e := res[f]
		msg := i18n.T(lang, e.Key)
		if msg == e.Key {
			msg = e.Msg
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, msg)
	}
	return errInvalidDraft
}
