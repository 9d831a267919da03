// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Report pairs a requested host with the outcome of inspecting it.
type Report struct {
	Host   string  `json:"host"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
}

// Error returns the failure message, or "" on success.
func (r Report) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// RenderText writes a human-readable block for each report.
func RenderText(w io.Writer, reports []Report) error {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Host: %s\n", r.Host)
		if r.Err != nil {
			fmt.Fprintf(&b, "  Error: %v\n", r.Err)
			continue
		}

		res := r.Result
		validity := "Invalid"
		if res.ValidityStatus {
			validity = "Valid"
		}
		fmt.Fprintf(&b, "  Validity Status:  %s\n", validity)
		fmt.Fprintf(&b, "  Expiration Date:  %s\n", res.ExpirationDate)
		fmt.Fprintf(&b, "  Issuer Details:   %s\n", res.IssuerDetails)
		fmt.Fprintf(&b, "  Subject Details:  %s\n", res.SubjectDetails)
		fmt.Fprintf(&b, "  Valid for Domain: %s\n", yesNo(res.IsValidForDomain))
		fmt.Fprintf(&b, "  Not Self-Signed:  %s\n", yesNo(res.IsNotSelfSigned))
		fmt.Fprintf(&b, "  CRL/OCSP Status:  %s\n", res.RevocationStatus)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderTable renders reports as a markdown table.
func RenderTable(reports []Report) string {
	if len(reports) == 0 {
		return "No hosts inspected"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	headers := []string{"Host", "Valid", "Expires", "Issuer", "Subject", "Domain Match", "Not Self-Signed", "Revocation", "Error"}
	table.Header(headers)

	var rows [][]string
	for _, r := range reports {
		if r.Err != nil {
			rows = append(rows, []string{r.Host, "-", "-", "-", "-", "-", "-", "-", r.Error()})
			continue
		}
		res := r.Result
		rows = append(rows, []string{
			r.Host,
			yesNo(res.ValidityStatus),
			res.ExpirationDate,
			res.IssuerDetails,
			res.SubjectDetails,
			yesNo(res.IsValidForDomain),
			yesNo(res.IsNotSelfSigned),
			res.RevocationStatus,
			"",
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
