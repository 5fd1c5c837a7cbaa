package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/sayotte/frontierdemo/internal/bench"
	"github.com/sayotte/frontierdemo/internal/logger"
)

func main() {
	log.SetFlags(log.Lshortfile)

	configFile := flag.String("config", "", "YAML benchmark config; built-in defaults when empty")
	genConfig := flag.Bool("genConfig", false, "Write the default config to -config, then exit")
	operations := flag.Int("ops", 0, "Override the number of operations")
	seed := flag.Int64("seed", 0, "Override the random seed")
	quiet := flag.Bool("quiet", false, "Only print the final report")
	flag.Parse()

	cfg := bench.DefaultConfig()

	if *genConfig {
		if *configFile == "" {
			log.Fatal("-genConfig needs -config")
		}
		outBytes, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatal(fmt.Errorf("yaml.Marshal: %w", err))
		}
		if err := os.WriteFile(*configFile, outBytes, 0644); err != nil {
			log.Fatal(fmt.Errorf("os.WriteFile(%q): %w", *configFile, err))
		}
		return
	}

	if *configFile != "" {
		inBytes, err := os.ReadFile(*configFile)
		if err != nil {
			log.Fatal(fmt.Errorf("os.ReadFile(%q): %w", *configFile, err))
		}
		cfg = bench.Config{}
		if err := yaml.Unmarshal(inBytes, &cfg); err != nil {
			log.Fatal(fmt.Errorf("yaml.Unmarshal: %w", err))
		}
	}
	if *operations > 0 {
		cfg.Operations = *operations
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var lg logger.Logger = logger.NewWriterLogger(os.Stderr, log.LstdFlags)
	if *quiet {
		lg = logger.NewNoopLogger()
	}
	defer lg.Close()

	report, err := bench.Run(cfg, lg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(report)
}
