package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"cinelist/models"
	"cinelist/services/metadata"
)

func newTrendingCommand(a *app) *cobra.Command {
	var (
		mediaType string
		window    string
		page      int
	)
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List trending titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService(a.settings)
			if err != nil {
				return err
			}
			defer svc.Close()
			result, err := svc.Trending(cmd.Context(), metadata.MediaType(strings.ToLower(mediaType)), strings.ToLower(window), page)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderItems(result, mediaType))
			return nil
		},
	}
	cmd.Flags().StringVar(&mediaType, "type", "all", "all, movie, tv or person")
	cmd.Flags().StringVar(&window, "window", "week", "day or week")
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	var (
		kind string
		page int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search movies, shows and people",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := searchKind(kind)
			if err != nil {
				return err
			}
			svc, err := a.newService(a.settings)
			if err != nil {
				return err
			}
			defer svc.Close()
			result, err := svc.Search(cmd.Context(), mediaType, strings.Join(args, " "), page)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderItems(result, string(mediaType)))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "multi", "multi, movie, tv or person")
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	return cmd
}

func searchKind(kind string) (metadata.MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "multi", "all":
		return metadata.MediaAll, nil
	case "person", "people":
		return metadata.MediaPerson, nil
	}
	return metadata.ParseMediaType(kind)
}

func newTrailerCommand(a *app) *cobra.Command {
	var fallback bool
	cmd := &cobra.Command{
		Use:   "trailer <movie|tv> <id>",
		Short: "Print the best trailer for a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := metadata.ParseMediaType(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[1])
			}
			svc, err := a.newService(a.settings)
			if err != nil {
				return err
			}
			defer svc.Close()
			resp, err := svc.Trailer(cmd.Context(), mediaType, id, fallback)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !resp.Available {
				fmt.Fprintf(out, "no trailer available for %s %d\n", mediaType, id)
				return nil
			}
			fmt.Fprintf(out, "%s (%s, %s)\n%s\n", resp.Trailer.Name, resp.Trailer.Type, resp.Trailer.Language, resp.WatchURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fallback, "fallback", false, "accept a teaser or clip when no trailer exists")
	return cmd
}

func renderItems(page *models.Page[models.MediaItem], defaultType string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Type", "Title", "Date", "Rating"})
	for _, item := range page.Results {
		kind := item.MediaType
		if kind == "" {
			kind = defaultType
		}
		title := item.Title
		if title == "" {
			title = item.Name
		}
		date := item.ReleaseDate
		if date == "" {
			date = item.FirstAirDate
		}
		rating := ""
		if item.VoteAverage > 0 {
			rating = strconv.FormatFloat(item.VoteAverage, 'f', 1, 64)
		}
		t.AppendRow(table.Row{item.ID, kind, title, date, rating})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("page %d of %d", page.Page, page.TotalPages), "", page.TotalResults})
	return t.Render()
}
