package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/suparena/benchstore"
	"github.com/suparena/benchstore/jsonstore"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "Path to a YAML storage config")
	verifyFlag  = flag.String("verify", "", "Round-trip a document JSON file through the core registry")
	listFlag    = flag.Bool("list", false, "List stored experiment names (requires -config)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := benchstore.GetVersionInfo()
		fmt.Printf("benchstore version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *verifyFlag != "" {
		if err := verify(*verifyFlag); err != nil {
			fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("OK")
		return
	}

	if *listFlag {
		if err := listExperiments(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	flag.Usage()
	os.Exit(2)
}

// verify decodes a document file with the core registry, re-encodes the
// result, and prints the canonical document. A failure means the file holds
// an unknown type or a malformed document.
func verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc jsonstore.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	reg := jsonstore.CoreRegistry()
	obj, err := reg.Decode(&doc)
	if err != nil {
		return err
	}
	encoded, err := reg.Encode(obj)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func listExperiments(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("-list requires -config")
	}
	cfg, err := benchstore.LoadConfig(configPath)
	if err != nil {
		return err
	}
	backend, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	store := benchstore.NewStore(jsonstore.CoreRegistry(), backend)
	names, err := store.ListExperimentNames(context.Background())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
