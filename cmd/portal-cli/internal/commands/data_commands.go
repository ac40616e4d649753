package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/infrastructure/rbacfile"

	"github.com/spf13/cobra"
)

// DataCommandHandler syncs holidays, moves the permission matrix between the
// database and YAML files and renders posters.
type DataCommandHandler struct {
	runtime *Runtime
}

// NewDataCommandHandler creates the handler on top of a shared runtime.
func NewDataCommandHandler(rt *Runtime) *DataCommandHandler {
	return &DataCommandHandler{runtime: rt}
}

// SyncHolidaysCmd refreshes the stored holidays of one year
func (commandHandler *DataCommandHandler) SyncHolidaysCmd(cmd *cobra.Command, _ []string) error {
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = time.Now().Year()
	}

	c, log, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}

	result, err := c.Holidays.Sync(cmd.Context(), access.SystemPrincipal(), year)
	if err != nil {
		return fmt.Errorf("failed to sync holidays: %w", err)
	}
	log.Info("Synced ", len(result.Holidays), " holidays for ", result.Year, " from ", result.Source)
	return nil
}

// ExportRolesCmd writes the permission matrix as YAML
func (commandHandler *DataCommandHandler) ExportRolesCmd(cmd *cobra.Command, _ []string) error {
	outputFilePath, _ := cmd.Flags().GetString("output-file")

	c, _, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}

	matrix, err := c.Access.Matrix(cmd.Context(), access.SystemPrincipal())
	if err != nil {
		return fmt.Errorf("failed to read permission matrix: %w", err)
	}

	if outputFilePath == "" {
		return rbacfile.Encode(cmd.OutOrStdout(), matrix)
	}
	f, err := os.Create(outputFilePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputFilePath, err)
	}
	defer f.Close()
	return rbacfile.Encode(f, matrix)
}

// ImportRolesCmd replaces the permission matrix with a YAML file
func (commandHandler *DataCommandHandler) ImportRolesCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, _ := cmd.Flags().GetString("input-file")
	if inputFilePath == "" {
		return errors.New("--input-file is required")
	}

	matrix, err := rbacfile.Load(inputFilePath)
	if err != nil {
		return err
	}

	c, log, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}

	if err := c.Access.Import(cmd.Context(), nil, matrix); err != nil {
		return fmt.Errorf("failed to import permission matrix: %w", err)
	}
	log.Info("Imported permission matrix from ", inputFilePath)
	return nil
}

// PosterCmd renders the poster of a show into a PDF file
func (commandHandler *DataCommandHandler) PosterCmd(cmd *cobra.Command, _ []string) error {
	showID, _ := cmd.Flags().GetString("show")
	outputFilePath, _ := cmd.Flags().GetString("out")
	if showID == "" {
		return errors.New("--show is required")
	}

	c, log, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}

	pdf, fileName, err := c.Posters.Poster(cmd.Context(), access.SystemPrincipal(), showID)
	if err != nil {
		return fmt.Errorf("failed to render poster: %w", err)
	}
	if outputFilePath == "" {
		outputFilePath = fileName
	}
	if err := os.WriteFile(outputFilePath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFilePath, err)
	}
	log.Info("Poster saved to ", outputFilePath)
	return nil
}

// InitDataCommands registers sync-holidays, roles export/import and poster
func InitDataCommands(rootCmd *cobra.Command, rt *Runtime) error {
	handler := NewDataCommandHandler(rt)

	var syncHolidaysCmd = &cobra.Command{
		Use:   "sync-holidays",
		Short: "Fetch and store the public holidays of a year",
		RunE:  handler.SyncHolidaysCmd,
	}
	syncHolidaysCmd.Flags().IntP("year", "", 0, "Year to sync (default current year)")
	rootCmd.AddCommand(syncHolidaysCmd)

	var rolesCmd = &cobra.Command{
		Use:   "roles",
		Short: "Manage the role permission matrix",
	}

	var exportRolesCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the role permission matrix as YAML",
		RunE:  handler.ExportRolesCmd,
	}
	exportRolesCmd.Flags().StringP("output-file", "", "", "Target file (default stdout)")
	rolesCmd.AddCommand(exportRolesCmd)

	var importRolesCmd = &cobra.Command{
		Use:   "import",
		Short: "Replace the role permission matrix from a YAML file",
		RunE:  handler.ImportRolesCmd,
	}
	importRolesCmd.Flags().StringP("input-file", "", "", "YAML file with a roles mapping")
	rolesCmd.AddCommand(importRolesCmd)
	rootCmd.AddCommand(rolesCmd)

	var posterCmd = &cobra.Command{
		Use:   "poster",
		Short: "Render the poster of a show as PDF",
		RunE:  handler.PosterCmd,
	}
	posterCmd.Flags().StringP("show", "", "", "Show ID")
	posterCmd.Flags().StringP("out", "o", "", "Target PDF (default suggested file name)")
	rootCmd.AddCommand(posterCmd)

	return nil
}
