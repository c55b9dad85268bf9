package options

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Format, "output", "o", FormatText,
		"Output format. One of 'text', 'json' or 'yaml'.")
}

func (o *OutputOptions) out() io.Writer {
	if o.Out == nil {
		return color.Output
	}
	return o.Out
}

// Structured returns json or yaml when machine output was requested, or "".
func (o *OutputOptions) Structured() string {
	if o.JSON {
		return FormatJSON
	}
	switch f := strings.ToLower(o.Format); f {
	case FormatJSON, FormatYAML:
		return f
	}
	return ""
}

// Validate rejects unknown formats.
func (o *OutputOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case "", FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.Format)
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Structured() == FormatJSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(o.out(), string(b))
		return nil
	}
	return err
}
