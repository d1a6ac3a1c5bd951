package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpuradar/gpuradar/internal/fetch"
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Reports the exit IP the scraper would use",
		Long: `Checks what public IP outbound requests leave from, honoring the
configured proxy mode. Useful to confirm Tor routing before a run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			proxyURL := ""
			if fetch.ProxyMode(cfg.Proxy.Mode) == fetch.ProxyTor {
				proxyURL = fetch.DefaultTorProxyURL
				if len(cfg.Proxy.URLs) > 0 {
					proxyURL = cfg.Proxy.URLs[0]
				}
			}

			prober := fetch.NewProber(proxyURL, logger)
			ip, err := prober.Check(cmd.Context())
			if err != nil {
				return fmt.Errorf("probe exit ip: %w", err)
			}
			fmt.Printf("Exit IP: %s\n", ip)
			return nil
		},
	}
	return cmd
}
