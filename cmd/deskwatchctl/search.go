package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func runSearch(apiURL, query string, out io.Writer) error {
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	u := apiURL + "/api/search?query=" + url.QueryEscape(query)
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

func runHealth(apiURL string, out io.Writer) error {
	resp, err := http.Get(apiURL + "/api/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, err = io.Copy(out, resp.Body)
	return err
}
