// Package migration keeps persisted state readable across releases: it checks
// and upgrades the schema version of the state document and imports data
// exported from the legacy browser application.
package migration

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/store"
)

// BackupSuffix is appended to the state file name for the pre-import copy.
const BackupSuffix = ".bak"

// LoadAndUpgrade loads the document from st and upgrades it in memory. When an
// upgrade ran, the upgraded document is saved after backing up the original.
func LoadAndUpgrade(st *store.Store, now time.Time) (store.Document, UpgradeResult, error) {
	doc, found, err := st.Load()
	if err != nil {
		return store.Document{}, UpgradeResult{}, err
	}
	if !found {
		return doc, UpgradeResult{From: store.SchemaVersion, To: store.SchemaVersion}, nil
	}

	upgraded, res, err := Upgrade(doc, now)
	if err != nil {
		return store.Document{}, res, err
	}
	if res.Upgraded() {
		if err = Backup(st.Path()); err != nil {
			return store.Document{}, res, err
		}
		if err = st.Save(upgraded); err != nil {
			return store.Document{}, res, fmt.Errorf("saving upgraded state: %w", err)
		}
	}
	return upgraded, res, nil
}

// Backup copies the state file next to itself with BackupSuffix. A missing
// file is not an error.
func Backup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := copyFile(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	return nil
}

// RunImport imports a legacy export file into st. When st already holds a
// document the user is asked to confirm on in; the previous document is
// backed up before it is replaced. assumeYes skips the prompt.
func RunImport(out io.Writer, in io.Reader, exportPath string, st *store.Store, now time.Time, assumeYes bool) (ImportReport, error) {
	data, err := os.ReadFile(exportPath)
	if err != nil {
		return ImportReport{}, fmt.Errorf("reading export: %w", err)
	}

	doc, report, err := ImportLegacy(data, now)
	if err != nil {
		return report, err
	}

	hadState := st.Exists()
	if hadState && !assumeYes {
		fmt.Fprintf(out, "Existing state found at %s.\n", st.Path())
		fmt.Fprintf(out, "Replace it with the data from %s? [y/N] ", filepath.Base(exportPath))

		var response string
		if _, scanErr := fmt.Fscanln(in, &response); scanErr != nil {
			response = ""
		}
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Import skipped. Existing state left untouched.")
			return report, ErrImportDeclined
		}
	}

	if err = Backup(st.Path()); err != nil {
		return report, err
	}
	doc.SavedAt = now.UTC()
	if err = st.Save(doc); err != nil {
		return report, fmt.Errorf("saving imported state: %w", err)
	}

	fmt.Fprintf(out, "Imported %d activities (%d samples), %d calculations, %d ledger transactions.\n",
		report.Activities, report.Placeholders, report.Calculations, report.Transactions)
	if hadState {
		fmt.Fprintf(out, "Previous state preserved at %s.\n", st.Path()+BackupSuffix)
	}
	return report, nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	if mkdirErr := os.MkdirAll(filepath.Dir(dst), 0o700); mkdirErr != nil {
		return mkdirErr
	}

	destFile, createErr := os.Create(dst)
	if createErr != nil {
		return createErr
	}
	defer destFile.Close()

	if _, copyErr := io.Copy(destFile, sourceFile); copyErr != nil {
		return copyErr
	}

	sourceInfo, statErr := os.Stat(src)
	if statErr != nil {
		return statErr
	}

	return os.Chmod(dst, sourceInfo.Mode())
}
