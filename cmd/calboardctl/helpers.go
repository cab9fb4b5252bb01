package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"

	"calboard/pkg/client"
)

func httpClient() *http.Client {
	return &http.Client{Timeout: timeout}
}

func errorLine(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return color.RedString("error: ") + apiErr.Message
	}
	return color.RedString("error: ") + err.Error()
}

// proofFromFile encodes a local image as a data URL, the format the web
// frontend sends.
func proofFromFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read proof file: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(raw)), nil
}

// ranked returns users ordered by total calories, highest first. Ties keep
// server order.
func ranked(users []client.User) []client.User {
	out := make([]client.User, len(users))
	copy(out, users)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCalories > out[j].TotalCalories
	})
	return out
}

func formatReset(ms int64) string {
	t := time.UnixMilli(ms)
	return fmt.Sprintf("%s (%s ago)", t.Format("2006-01-02 15:04:05"), time.Since(t).Round(time.Second))
}
