package cmd

import (
	"fmt"
	"os"

	"tagwire/wire"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var allTags = []wire.Tag{
	wire.TagVoid,
	wire.TagFalse,
	wire.TagTrue,
	wire.TagUint8,
	wire.TagUint16,
	wire.TagUint32,
	wire.TagUint64,
	wire.TagInt8,
	wire.TagInt16,
	wire.TagInt32,
	wire.TagInt64,
	wire.TagFloat32,
	wire.TagFloat64,
	wire.TagBytes,
	wire.TagString,
	wire.TagTuple,
	wire.TagStruct,
	wire.TagArray,
	wire.TagSelector,
	wire.TagReturn,
	wire.TagError,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Prints the encoding-tag taxonomy.",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Byte", "Name"})
		for _, t := range allTags {
			table.Append([]string{fmt.Sprintf("0x%02x", uint8(t)), t.String()})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
