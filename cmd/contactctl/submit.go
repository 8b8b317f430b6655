package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"vuidokan-site/config"
	"vuidokan-site/pkg/contactform"

	"github.com/spf13/cobra"
)

type formFlags struct {
	name    string
	email   string
	phone   string
	service string
	message string
}

func (f *formFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "mobile number, e.g. 0987654321")
	cmd.Flags().StringVar(&f.service, "service", "", "service of interest (optional)")
	cmd.Flags().StringVar(&f.message, "message", "", "message, 10 to 1000 characters")
}

func (f *formFlags) values() map[string]string {
	return map[string]string{
		"name":    f.name,
		"email":   f.email,
		"phone":   f.phone,
		"service": f.service,
		"message": f.message,
	}
}

// fill types every value into the form in schema order
func fill(form *contactform.Controller, values map[string]string) error {
	for _, spec := range contactform.DefaultSchema {
		if err := form.Input(spec.Name, values[spec.Name]); err != nil {
			return err
		}
	}
	return nil
}

func newSubmitCmd(cfg *config.Config) *cobra.Command {
	var (
		form    formFlags
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and send a contact request",
		Example: `  contactctl submit --name "Nguyễn Văn An" --email an@example.com \
    --phone 0987654321 --message "Tôi muốn đăng ký khóa học bơi"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sink := newTerminalSink(out)

			controller := contactform.NewController(
				contactform.DefaultSchema,
				contactform.NewHTTPTransport(baseURL, &http.Client{}),
				contactform.NewPresenter(sink),
				contactform.WithTimeout(timeout),
			)
			defer sink.dismissAll()

			if err := fill(controller, form.values()); err != nil {
				return err
			}

			fmt.Fprintln(out, sink.styles.muted.Render("Đang gửi..."))
			_, err := controller.Submit(cmd.Context())
			if errors.Is(err, contactform.ErrInvalidForm) {
				printFieldErrors(out, sink.styles, controller)
			}
			return err
		},
	}

	form.bind(cmd)
	cmd.Flags().StringVar(&baseURL, "url", cfg.ContactSubmitURL, "site base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.ContactSubmitTimeout, "submission timeout")

	return cmd
}

func newCheckCmd() *cobra.Command {
	var form formFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate contact fields without sending anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			styles := newStyles()

			controller := contactform.NewController(contactform.DefaultSchema, nil, nil)
			if err := fill(controller, form.values()); err != nil {
				return err
			}

			invalid := 0
			for _, spec := range contactform.DefaultSchema {
				result, err := controller.Blur(spec.Name)
				if err != nil {
					return err
				}
				if !result.Valid {
					invalid++
				}
			}

			if invalid > 0 {
				printFieldErrors(out, styles, controller)
				return fmt.Errorf("%w: %d field(s)", contactform.ErrInvalidForm, invalid)
			}
			fmt.Fprintln(out, styles.success.Render("Thông tin hợp lệ"))
			return nil
		},
	}

	form.bind(cmd)
	return cmd
}

func printFieldErrors(out io.Writer, styles theme, controller *contactform.Controller) {
	for _, f := range controller.Fields() {
		if f.Error == "" {
			continue
		}
		fmt.Fprintf(out, "%s %s\n", styles.label.Render(f.Name+":"), styles.error.Render(f.Error))
	}
}
