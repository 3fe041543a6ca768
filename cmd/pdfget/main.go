// Command pdfget downloads a zip archive of paper PDFs and extracts the
// first N entries, seeding a local corpus for the extraction pipeline.
package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	var (
		archiveURL = flag.String("url", "https://open-data-set.oss-cn-beijing.aliyuncs.com/dataset/pdf11000.zip", "zip archive of PDFs")
		dir        = flag.String("dir", "./pdfs", "extraction directory")
		limit      = flag.Int("limit", 1000, "maximum entries to extract")
	)
	flag.Parse()

	if err := run(*archiveURL, *dir, *limit); err != nil {
		log.Fatal(err)
	}
}

func run(archiveURL, dir string, limit int) error {
	tmp, err := os.CreateTemp("", "pdfget-*.zip")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	log.Printf("downloading %s", archiveURL)
	resp, err := http.Get(archiveURL)
	if err != nil {
		return fmt.Errorf("downloading archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading archive: HTTP %d", resp.StatusCode)
	}

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return fmt.Errorf("saving archive: %w", err)
	}
	log.Printf("downloaded %d bytes", size)

	reader, err := zip.OpenReader(tmp.Name())
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	extracted := 0
	for _, entry := range reader.File {
		if extracted >= limit {
			break
		}
		if entry.FileInfo().IsDir() {
			continue
		}
		if err := extractEntry(entry, dir); err != nil {
			return err
		}
		extracted++
	}
	log.Printf("extracted %d file(s) into %s", extracted, dir)
	return nil
}

func extractEntry(entry *zip.File, dir string) error {
	// Flatten to the base name; archive paths are untrusted.
	name := filepath.Base(entry.Name)
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, "..") {
		return nil
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening %s in archive: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("extracting %s: %w", name, err)
	}
	return nil
}
