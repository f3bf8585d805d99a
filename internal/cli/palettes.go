package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ellipsegen/pkg/palette"
)

func (c *CLI) palettesCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List the available palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(file)
			if err != nil {
				return err
			}
			fmt.Println(paletteTable(reg))
			printNewline()
			printNextStep("Use one", appName+" generate -p "+reg.Default().Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "palettes", "", "TOML file with additional palettes")
	return cmd
}

// paletteTable renders reg as a table with one row per palette. The default
// palette is marked.
func paletteTable(reg *palette.Registry) string {
	def := reg.Default().Name
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, reg.Len())
	for _, p := range reg.All() {
		name := p.Name
		if name == def {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(p.Len()),
			swatch(p.BackgroundColor()),
			swatches(p.Colors),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Palette", "Colors", "Background", "Swatches").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			if col == 1 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}
