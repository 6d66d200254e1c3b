package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().String("url", "", "Results page URL (or RESULTS_URL)")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "15s", "Timeout for each submission")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification for the results host")
	cmd.PersistentFlags().Bool("no-fallback", false, "Do not retry on the www.-toggled host")
	cmd.PersistentFlags().Float64("rate-limit", DefaultRateLimitRPS, "Maximum submissions per second (0 disables)")
	cmd.PersistentFlags().String("cache-ttl", DefaultCacheTTL.String(), "How long looked-up records are reused (0 disables)")
	cmd.PersistentFlags().String("config", "", "Path to YAML configuration file (optional)")
}
