package cmd

import (
	"fmt"

	"github.com/Daskott/raksha/server"
	"github.com/Daskott/raksha/server/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var zonesFile string

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Manage safety zones",
}

// zonesImportCmd loads zones from a yaml file of the form:
//
//	zones:
//	  - name: Central Market
//	    zone_type: caution
//	    risk_level: 5
var zonesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import safety zones from a yaml file",
	RunE: func(cmd *cobra.Command, args []string) error {
		zones, err := readZones(zonesFile)
		if err != nil {
			return err
		}

		serverCfg, err := serverConfig(config)
		if err != nil {
			return err
		}

		if err := server.ImportZones(serverCfg, isDevEnv, zones); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %v zone(s)\n", len(zones))
		return nil
	},
}

func init() {
	zonesImportCmd.Flags().StringVar(&zonesFile, "file", "", "yaml file listing the zones")
	cobra.CheckErr(zonesImportCmd.MarkFlagRequired("file"))

	zonesCmd.AddCommand(zonesImportCmd)
	rootCmd.AddCommand(zonesCmd)
}

func readZones(file string) ([]models.SafetyZone, error) {
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, formattedError("error reading zones file: %v", err)
	}

	zones := []models.SafetyZone{}
	if err := v.UnmarshalKey("zones", &zones); err != nil {
		return nil, formattedError("unable to decode zones: %v", err)
	}

	for i, zone := range zones {
		if zone.Name == "" {
			return nil, formattedError("zone %v has no name", i)
		}

		switch zone.ZoneType {
		case models.SAFE_ZONE, models.CAUTION_ZONE, models.DANGER_ZONE:
		default:
			return nil, formattedError("zone %q has an unknown zone_type %q", zone.Name, zone.ZoneType)
		}
	}

	return zones, nil
}
