package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"amadeus-cli/internal/features/transfers"
)

func newTransfersCommand() *cobra.Command {
	var (
		query  transfers.Query
		format string
	)

	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Search airport and city transfer offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			offers, raw, err := rt.transfers.Search(rt.context(cmd), query)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderTransfers(offers)
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().StringVar(&query.Start.LocationCode, "from-code", "", "pickup airport IATA code")
	cmd.Flags().StringVar(&query.Start.AddressLine, "from-address", "", "pickup street address")
	cmd.Flags().StringVar(&query.Start.CityName, "from-city", "", "pickup city name")
	cmd.Flags().StringVar(&query.Start.CountryCode, "from-country", "", "pickup country code")
	cmd.Flags().StringVar(&query.Start.GeoCode, "from-geo", "", "pickup lat,lng")
	cmd.Flags().StringVar(&query.End.LocationCode, "to-code", "", "dropoff airport IATA code")
	cmd.Flags().StringVar(&query.End.AddressLine, "to-address", "", "dropoff street address")
	cmd.Flags().StringVar(&query.End.CityName, "to-city", "", "dropoff city name")
	cmd.Flags().StringVar(&query.End.CountryCode, "to-country", "", "dropoff country code")
	cmd.Flags().StringVar(&query.End.GeoCode, "to-geo", "", "dropoff lat,lng")
	cmd.Flags().StringVar(&query.TransferType, "type", "", "transfer type: PRIVATE, SHARED, TAXI, HOURLY, AIRPORT_EXPRESS, AIRPORT_BUS")
	cmd.Flags().StringVar(&query.StartDateTime, "at", "", "pickup datetime (YYYY-MM-DDTHH:MM:SS)")
	cmd.Flags().IntVar(&query.Passengers, "passengers", 1, "number of passengers")
	addFormatFlag(cmd, &format)

	return cmd
}

// renderTransfers prints transfer offers for human reading
func renderTransfers(offers []transfers.Offer) {
	if len(offers) == 0 {
		fmt.Println("No transfers found.")
		return
	}

	for _, offer := range offers {
		fmt.Printf("🚗 %s · %s\n", offer.TransferType, offer.ServiceProvider.Name)
		if offer.Vehicle.Description != "" {
			fmt.Printf("    %s\n", offer.Vehicle.Description)
		}
		fmt.Printf("    💰 %s%s\n",
			currencySymbol(offer.Quotation.CurrencyCode), offer.Quotation.MonetaryAmount)
		fmt.Println()
	}
}
