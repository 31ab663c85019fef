package cmd

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"geolookup/geo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newLookupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [ip-or-hostname]",
		Short: "Look up one address; without an argument ipapi resolves the caller",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.Output != "json" && a.opts.Output != "text" {
				return ErrUnknownOutput
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var subject string
			if len(args) == 1 {
				subject = args[0]
			}
			return a.lookup(cmd, subject)
		},
	}
	cmd.Flags().StringVarP(&a.opts.Output, "output", "o", a.opts.Output, "output format (json or text)")
	return cmd
}

func (a *app) lookup(cmd *cobra.Command, subject string) error {
	locator, err := newLocator(a.cfg, a.logger)
	if err != nil {
		return err
	}

	req := geo.Request{Subject: subject, Lang: a.cfg.Lang, Fields: a.cfg.Fields}
	record, err := locator.Locate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := a.printRecord(cmd.OutOrStdout(), record); err != nil {
		return err
	}
	if geo.Failed(record) {
		return ErrVendorFailure
	}
	return nil
}

func (a *app) printRecord(w io.Writer, record geo.Record) error {
	if a.opts.Output == "text" {
		_, err := fmt.Fprintf(w, "vendor:  %s\nsuccess: %t\naddress: %s\n", a.cfg.Vendor, record.Success(), record.Address())
		return err
	}
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
