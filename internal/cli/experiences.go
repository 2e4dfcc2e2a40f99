package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/experiences"
)

func newActivitiesCommand() *cobra.Command {
	var (
		point      experiences.GeoCode
		radius     int
		square     []float64
		activityID string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Search tours and activities near a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			if activityID != "" {
				activity, raw, err := rt.experiences.ActivityDetails(rt.context(cmd), activityID)
				if err != nil {
					return err
				}
				if format == formatHuman {
					renderActivities([]experiences.Activity{*activity})
					return nil
				}
				return printRawJSON(raw)
			}

			var (
				activities []experiences.Activity
				raw        []byte
			)

			switch {
			case len(square) == 4:
				activities, raw, err = rt.experiences.ActivitiesBySquare(rt.context(cmd), experiences.Square{
					North: square[0], South: square[1], East: square[2], West: square[3],
				})
			case len(square) > 0:
				return common.InvalidInputError("--square needs exactly four values: north,south,east,west")
			case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng"):
				activities, raw, err = rt.experiences.Activities(rt.context(cmd), point, radius)
			default:
				return common.InvalidInputError("either --lat/--lng or --square is required")
			}
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderActivities(activities)
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().Float64Var(&point.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&point.Longitude, "lng", 0, "longitude")
	cmd.Flags().IntVar(&radius, "radius", 5, "search radius in km")
	cmd.Flags().Float64SliceVar(&square, "square", nil, "bounding box: north,south,east,west")
	cmd.Flags().StringVar(&activityID, "id", "", "fetch one activity by id")
	addFormatFlag(cmd, &format)

	return cmd
}

func newPOICommand() *cobra.Command {
	var (
		point      experiences.GeoCode
		radius     int
		square     []float64
		categories []string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "poi",
		Short: "Search points of interest near a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			var (
				pois []experiences.PointOfInterest
				raw  []byte
			)

			switch {
			case len(square) == 4:
				pois, raw, err = rt.experiences.PointsOfInterestBySquare(rt.context(cmd), experiences.Square{
					North: square[0], South: square[1], East: square[2], West: square[3],
				}, categories)
			case len(square) > 0:
				return common.InvalidInputError("--square needs exactly four values: north,south,east,west")
			case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng"):
				pois, raw, err = rt.experiences.PointsOfInterest(rt.context(cmd), point, radius, categories)
			default:
				return common.InvalidInputError("either --lat/--lng or --square is required")
			}
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderPOIs(pois)
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().Float64Var(&point.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&point.Longitude, "lng", 0, "longitude")
	cmd.Flags().IntVar(&radius, "radius", 2, "search radius in km (max 20)")
	cmd.Flags().Float64SliceVar(&square, "square", nil, "bounding box: north,south,east,west")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "category filters (SIGHTS, RESTAURANT, ...)")
	addFormatFlag(cmd, &format)

	return cmd
}

// renderActivities prints activities for human reading
func renderActivities(activities []experiences.Activity) {
	if len(activities) == 0 {
		fmt.Println("No activities found.")
		return
	}

	for _, activity := range activities {
		fmt.Printf("🎟️  %s\n", activity.Name)
		if activity.Price.Amount != "" {
			fmt.Printf("    💰 %s%s", currencySymbol(activity.Price.CurrencyCode), activity.Price.Amount)
			if activity.Rating != "" {
				fmt.Printf(" · ⭐ %s", activity.Rating)
			}
			fmt.Println()
		}
		if activity.ShortDescription != "" {
			fmt.Printf("    %s\n", activity.ShortDescription)
		}
		if activity.BookingLink != "" {
			fmt.Printf("    🔗 %s\n", activity.BookingLink)
		}
		fmt.Println()
	}
}

// renderPOIs prints points of interest for human reading
func renderPOIs(pois []experiences.PointOfInterest) {
	if len(pois) == 0 {
		fmt.Println("No points of interest found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, poi := range pois {
		fmt.Fprintf(w, "  %s\t%s\t%s\n",
			poi.Name, strings.ToLower(poi.Category), strings.Join(poi.Tags, ", "))
	}
	w.Flush()
}
