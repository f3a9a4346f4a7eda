package ingest

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	jmdictSimplifiedOwner = "scriptin"
	jmdictSimplifiedRepo  = "jmdict-simplified"
)

// EnsureArtifact checks whether path already exists and, if not,
// downloads the latest jmdict-simplified family release asset whose
// name contains namePattern (e.g. "jmdict-eng", "kanjidic2-en",
// "jmnedict-all") and extracts its JSON file to path. Adapted from the
// teacher's pkg/dictionary.EnsureDictionary, generalized from a single
// hardcoded "jmdict-eng-common" pattern to any family released under
// the same jmdict-simplified GitHub project, since kanjidic2-simplified
// and jmnedict-simplified ship as sibling releases of that same repo.
func EnsureArtifact(ctx context.Context, namePattern, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	fmt.Printf("dictionary artifact not found at %s, attempting download (%s)...\n", path, namePattern)

	downloadURL, err := latestReleaseAssetURL(ctx, namePattern)
	if err != nil {
		return fmt.Errorf("find latest release asset matching %q: %w", namePattern, err)
	}

	fmt.Printf("downloading %s...\n", downloadURL)
	return downloadAndExtractJSON(ctx, downloadURL, path)
}

func latestReleaseAssetURL(ctx context.Context, namePattern string) (string, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", jmdictSimplifiedOwner, jmdictSimplifiedRepo)
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "dictsearch-cli")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var release struct {
		Assets []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, namePattern) &&
			(strings.HasSuffix(asset.Name, ".json.tgz") || strings.HasSuffix(asset.Name, ".json.gz")) {
			return asset.BrowserDownloadURL, nil
		}
	}

	return "", fmt.Errorf("no release asset matching %q found", namePattern)
}

func downloadAndExtractJSON(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return fmt.Errorf("no json file found in downloaded archive")
		}
		if err != nil {
			return fmt.Errorf("read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
			continue
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer outFile.Close()

		if _, err := io.Copy(outFile, tarReader); err != nil {
			return fmt.Errorf("write extracted json: %w", err)
		}
		return nil
	}
}
