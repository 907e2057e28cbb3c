package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/aretw0/supernotes/pkg/core"
	"github.com/aretw0/supernotes/pkg/query"
)

type listOptions struct {
	filter string
	sort   string
	tags   []string
	glob   bool
	search string
	lang   string
	json   bool
}

func (o *listOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.filter, "filter", "", "Filter: all, pinned, tag (default from config)")
	cmd.Flags().StringVar(&o.sort, "sort", "", "Sort: none, newest, oldest, title (default from config)")
	cmd.Flags().StringSliceVar(&o.tags, "tag", nil, "Active tag for --filter tag (repeatable)")
	cmd.Flags().BoolVar(&o.glob, "glob", false, "Treat --tag values as glob patterns")
	cmd.Flags().StringVar(&o.lang, "lang", "", "Language for title collation (default from config)")
	cmd.Flags().BoolVar(&o.json, "json", false, "Output in JSON format")
}

func (o *listOptions) query(a *app) (query.Query, error) {
	filterName := o.filter
	if filterName == "" {
		filterName = a.cfg.Display.Filter
	}
	sortName := o.sort
	if sortName == "" {
		sortName = a.cfg.Display.Sort
	}
	langName := o.lang
	if langName == "" {
		langName = a.cfg.Display.Language
	}

	filter, err := query.ParseFilter(filterName)
	if err != nil {
		return query.Query{}, err
	}
	// Passing tags implies the tag filter.
	if len(o.tags) > 0 && filter == query.FilterNone {
		filter = query.FilterTag
	}
	order, err := query.ParseSort(sortName)
	if err != nil {
		return query.Query{}, err
	}
	tag, err := language.Parse(langName)
	if err != nil {
		a.logger.Warn("unknown language, using English", "language", langName)
		tag = language.English
	}

	return query.Query{
		Filter:     filter,
		Sort:       order,
		ActiveTags: o.tags,
		Glob:       o.glob,
		Search:     o.search,
		Language:   tag,
	}, nil
}

func (o *listOptions) run(a *app, cmd *cobra.Command) error {
	q, err := o.query(a)
	if err != nil {
		return err
	}

	nb, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer nb.Close()

	notes := query.SelectAndOrder(nb.Store.Notes(), q)
	return printNotes(cmd, notes, o.json, nb.Store.DarkMode())
}

func printNotes(cmd *cobra.Command, notes []core.Note, asJSON, dark bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if notes == nil {
			notes = []core.Note{}
		}
		return encoder.Encode(notes)
	}

	if len(notes) == 0 {
		fmt.Fprintln(out, "No notes.")
		return nil
	}
	t := themeFor(dark)
	for _, n := range notes {
		fmt.Fprintln(out, t.row(n))
	}
	return nil
}

func newListCmd(a *app) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, pinned first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(a, cmd)
		},
	}
	o.bind(cmd)
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "Case-insensitive search on title and content")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search notes by title or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.search = args[0]
			return o.run(a, cmd)
		},
	}
	o.bind(cmd)
	return cmd
}
