package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/shenikar/citizen_report/internal/service"
	"github.com/spf13/cobra"
)

func newIncidentsCommand(st *state) *cobra.Command {
	var page int
	var category string

	cmd := &cobra.Command{
		Use:   "incidents",
		Short: "List reported incidents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				c, ok := models.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				category = string(c)
			}

			result, err := st.app.Incidents.FetchIncidents(cmd.Context(), page, category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Stale() {
				fmt.Fprintf(out, "Offline: showing incidents cached at %s\n", result.FetchedAt.Local().Format(time.DateTime))
			}
			printIncidents(out, result.Items, time.Now())
			if !result.Stale() {
				fmt.Fprintf(out, "Page %d of %d\n", result.Page, result.TotalPages)
				if cursor := st.app.Incidents.Cursor(); cursor.HasMore() {
					fmt.Fprintf(out, "More incidents: --page %d\n", cursor.Page+1)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&category, "category", "", "filter by category ("+categoryList()+")")
	return cmd
}

func newMineCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List incidents you reported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !st.app.Auth.IsAuthenticated() {
				return errNotLoggedIn
			}
			incidents, err := st.app.Incidents.FetchMine(cmd.Context())
			if err != nil {
				return err
			}
			printIncidents(cmd.OutOrStdout(), incidents, time.Now())
			return nil
		},
	}
}

type reportFlags struct {
	title       string
	category    string
	description string
	lat         float64
	lon         float64
	location    string
	imagePath   string
}

func newReportCommand(st *state) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a new incident",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !st.app.Auth.IsAuthenticated() {
				return errNotLoggedIn
			}

			draft := models.IncidentDraft{
				Title:        f.title,
				Category:     f.category,
				Description:  f.description,
				LocationName: f.location,
			}

			hasLat, hasLon := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
			if hasLat != hasLon {
				return fmt.Errorf("--lat and --lon must be given together")
			}
			if hasLat {
				draft.Latitude = models.NewCoordinate(f.lat)
				draft.Longitude = models.NewCoordinate(f.lon)
				if draft.LocationName == "" {
					draft.LocationName = st.app.Geocoder.LocationName(cmd.Context(), f.lat, f.lon)
				}
			}

			if f.imagePath != "" {
				image, err := readImageDataURI(f.imagePath)
				if err != nil {
					return err
				}
				draft.Image = image
			}

			created, err := st.app.Incidents.CreateIncident(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Incident #%d reported: %s\n", created.ID, created.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.title, "title", "", "short title")
	cmd.Flags().StringVar(&f.category, "category", "", "category ("+categoryList()+")")
	cmd.Flags().StringVar(&f.description, "description", "", "what happened")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&f.location, "location", "", "location name (looked up from --lat/--lon when empty)")
	cmd.Flags().StringVar(&f.imagePath, "image", "", "path to a photo")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newCategoriesCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Count recent incidents per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := st.app.Incidents.CategoryTally(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range models.Categories {
				fmt.Fprintf(out, "%-10s %d\n", c, counts[c])
			}
			return nil
		},
	}
}

func newLocateCommand(st *state) *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Look up the name of a place by coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), st.app.Geocoder.LocationName(cmd.Context(), lat, lon))
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func printIncidents(out io.Writer, incidents []models.Incident, now time.Time) {
	if len(incidents) == 0 {
		fmt.Fprintln(out, "No incidents")
		return
	}
	for i := range incidents {
		inc := &incidents[i]
		category := inc.PrimaryCategory()
		if category == "" {
			category = string(models.CategoryOther)
		}
		fmt.Fprintf(out, "#%d [%s] %s (%s)\n", inc.ID, strings.ToLower(category), inc.Title, service.RelativeTime(inc.Date, now))
		if inc.LocationName != "" {
			fmt.Fprintf(out, "    %s\n", inc.LocationName)
		}
	}
}

func categoryList() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// readImageDataURI читает файл изображения и кодирует его в data URI
func readImageDataURI(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
