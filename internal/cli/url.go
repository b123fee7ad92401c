package cli

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dschema/internal/domain"
	"dschema/internal/logging"
	"dschema/internal/selection"
	"dschema/internal/urlservice"
)

var errIncomplete = errors.New("selection incomplete: a group and at least one course are required")

func newURLCmd(opts *options) *cobra.Command {
	var (
		groupValue string
		courses    []string
		noLocation bool
		noExams    bool
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the calendar link for a selection without starting the UI",
		Example: `  dschema url --group A
  dschema url --group C --course EDA452 --course TDA555 --no-exams`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := logging.Console(cfg.Log, cmd.ErrOrStderr()); err != nil {
				return err
			}
			timeout, err := cfg.Service.RequestTimeout()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("course") {
				courses = cfg.Selection.Courses
			}
			selected, err := domain.CoursesByValue(courses)
			if err != nil {
				return &exitError{code: 2, err: err}
			}

			var group *domain.Group
			if groupValue != "" {
				g, ok := domain.FindGroup(groupValue)
				if !ok {
					return &exitError{code: 2, err: fmt.Errorf("unknown group %q", groupValue)}
				}
				group = &g
			}

			client := urlservice.NewHTTPClient(cfg.Service.BaseURL, timeout)
			store := selection.NewStore(selected)
			link, err := resolveURL(cmd.Context(), client, store, group, !noLocation, !noExams)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "url:    %s\n", link)
			fmt.Fprintf(out, "webcal: %s\n", selection.ToWebcal(link))
			return nil
		},
	}

	cmd.Flags().StringVarP(&groupValue, "group", "g", "", "Group to subscribe to (A-G)")
	cmd.Flags().StringSliceVarP(&courses, "course", "c", nil, "Course code to include (repeatable, defaults to the configured courses)")
	cmd.Flags().BoolVar(&noLocation, "no-location", false, "Keep the raw event titles and locations")
	cmd.Flags().BoolVar(&noExams, "no-exams", false, "Leave out exams and exam signups")
	return cmd
}

// resolveURL drives the store through one submission and returns the link
func resolveURL(ctx context.Context, client urlservice.Client, store *selection.Store, group *domain.Group, location, exams bool) (string, error) {
	store.SetLocationModifier(location)
	store.SetExamModifier(exams)

	var submit *selection.SubmitEffect
	for _, effect := range store.SetGroup(group) {
		if s, ok := effect.(selection.SubmitEffect); ok {
			submit = &s
		}
	}
	if submit == nil {
		return "", &exitError{code: 2, err: errIncomplete}
	}

	log.WithFields(log.Fields{
		"seq":     submit.Seq,
		"group":   submit.Request.Group,
		"courses": len(submit.Request.Courses),
	}).Debug("submitting selection")

	link, err := client.GenerateURL(ctx, submit.Request)
	if err != nil {
		store.ApplyFailure(submit.Seq, err)
		return "", fmt.Errorf("could not generate calendar link: %w", err)
	}
	if outcome := store.ApplyURL(submit.Seq, link); outcome != selection.OutcomeApplied {
		return "", fmt.Errorf("could not generate calendar link: %w", store.Snapshot().RefreshErr)
	}
	return store.CalendarURL(), nil
}
