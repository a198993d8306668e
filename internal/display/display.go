// Package display renders API results for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/go-github/v45/github"

	"github.com/randywick/gita/internal/client"
	"github.com/randywick/gita/internal/ui"
)

// Repos prints title followed by one "<id> - <name>" line per repository,
// with ids left-aligned in a column one wider than the widest id.
func Repos(w io.Writer, title string, repos []client.RepositorySummary) {
	ids := make([]string, len(repos))
	for i, r := range repos {
		ids[i] = strconv.FormatInt(r.ID, 10)
	}
	width := ui.FitWidth(ids)

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderTitle(title))
	for i, r := range repos {
		fmt.Fprintln(w, ui.RenderDim(ui.PadRight(ids[i], width, 1)), "-", r.Name)
	}
}

var createdRows = []struct {
	heading string
	value   func(*github.Repository) string
}{
	{"Git URL", func(r *github.Repository) string { return r.GetGitURL() }},
	{"SSH URL", func(r *github.Repository) string { return r.GetSSHURL() }},
	{"URL", func(r *github.Repository) string { return r.GetHTMLURL() }},
	{"Private", func(r *github.Repository) string { return strconv.FormatBool(r.GetPrivate()) }},
	{"Name", func(r *github.Repository) string { return r.GetName() }},
	{"ID", func(r *github.Repository) string { return strconv.FormatInt(r.GetID(), 10) }},
}

// Created prints the metadata of a newly created repository from the raw
// create response. A payload without an id is printed verbatim.
func Created(w io.Writer, body []byte) (*github.Repository, error) {
	var repo github.Repository
	if err := json.Unmarshal(body, &repo); err != nil {
		return nil, fmt.Errorf("decoding created repository: %w", err)
	}
	if repo.GetID() == 0 {
		fmt.Fprintln(w, string(body))
		return &repo, nil
	}

	headings := make([]string, len(createdRows))
	for i, row := range createdRows {
		headings[i] = row.heading
	}
	width := ui.FitWidth(headings)

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderTitle("Created Repository"))
	for _, row := range createdRows {
		fmt.Fprintln(w, ui.RenderDim(ui.PadRight(row.heading, width, 1)), row.value(&repo))
	}
	return &repo, nil
}

// ValidationError prints the errors of a 422 create response.
func ValidationError(w io.Writer, body []byte) error {
	var resp github.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decoding validation error: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderError("Validation Error"))
	for _, e := range resp.Errors {
		fmt.Fprintf(w, "- %s %s\n", e.Resource, e.Message)
	}
	fmt.Fprintln(w, "Repository was NOT created")
	fmt.Fprintln(w)
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
