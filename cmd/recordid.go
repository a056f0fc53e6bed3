package cmd

import (
	"fmt"

	"aadhaar-records/core/table"
	"aadhaar-records/feature/records"

	"github.com/spf13/cobra"
)

// recordIDCmd prints the identifier of one key tuple.
var recordIDCmd = &cobra.Command{
	Use:   "recordid",
	Short: "Print the record identifier for a key tuple",
	Long: `Computes ADHR-<YYYYMMDD>-<PINCODE>-<HASH6> for the given key values.

Example:
  recordid --date 15-03-2024 --state UP --district Gorakhpur --pincode 273001`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		row := table.Row{}
		for _, key := range records.MergeKeys {
			v, err := cmd.Flags().GetString(key)
			if err != nil {
				return err
			}
			row[key] = v
		}
		fmt.Fprintln(cmd.OutOrStdout(), records.GenerateRecordID(row))
		return nil
	},
}

func init() {
	f := recordIDCmd.Flags()
	f.String("date", "", "Date as DD-MM-YYYY")
	f.String("state", "", "State name")
	f.String("district", "", "District name")
	f.String("pincode", "", "Pincode")
	_ = recordIDCmd.MarkFlagRequired("pincode")

	RootCmd.AddCommand(recordIDCmd)
}
