// Package otpcmd is a thin command-line adapter over the otp/otpauth core.
// It is an external collaborator, not part of the core: it formats values
// for a terminal and exits the process on error, neither of which the core
// itself ever does.
package otpcmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	otp "github.com/dnrvs/rusotp-go"
	"github.com/dnrvs/rusotp-go/otpauth"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rusotp",
	Short: "Generate and verify HOTP/TOTP codes from the command line",
}

// Execute runs the CLI and exits the process on error, as cobra commands
// conventionally do.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(hotpCmd, totpCmd)

	hotpCmd.AddCommand(hotpGenerateCmd, hotpVerifyCmd, hotpURICmd, hotpFromURICmd)
	totpCmd.AddCommand(totpGenerateCmd, totpVerifyCmd, totpURICmd, totpFromURICmd)

	for _, c := range []*cobra.Command{hotpGenerateCmd, hotpVerifyCmd, hotpURICmd} {
		c.Flags().String("algorithm", "SHA1", "HMAC algorithm (SHA1, SHA256, SHA512)")
		c.Flags().Int("digits", 6, "OTP digit count")
		c.Flags().Int("radix", 10, "OTP radix (2-36)")
	}
	for _, c := range []*cobra.Command{totpGenerateCmd, totpVerifyCmd, totpURICmd} {
		c.Flags().String("algorithm", "SHA1", "HMAC algorithm (SHA1, SHA256, SHA512)")
		c.Flags().Int("digits", 6, "OTP digit count")
		c.Flags().Int("radix", 10, "OTP radix (2-36)")
		c.Flags().Uint64("interval", 30, "time step, in seconds")
	}
}

func hotpConfigFromFlags(cmd *cobra.Command, secretB32 string) (*otp.HotpConfig, error) {
	algLabel, _ := cmd.Flags().GetString("algorithm")
	digits, _ := cmd.Flags().GetInt("digits")
	radix, _ := cmd.Flags().GetInt("radix")

	alg, err := otp.ParseAlgorithm(algLabel)
	if err != nil {
		return nil, err
	}
	secret, err := otp.ParseKeyLenient(secretB32)
	if err != nil {
		return nil, err
	}
	return otp.NewHotpConfig(alg, secret, digits, radix)
}

func totpConfigFromFlags(cmd *cobra.Command, secretB32 string) (*otp.TotpConfig, error) {
	algLabel, _ := cmd.Flags().GetString("algorithm")
	digits, _ := cmd.Flags().GetInt("digits")
	radix, _ := cmd.Flags().GetInt("radix")
	interval, _ := cmd.Flags().GetUint64("interval")

	alg, err := otp.ParseAlgorithm(algLabel)
	if err != nil {
		return nil, err
	}
	secret, err := otp.ParseKeyLenient(secretB32)
	if err != nil {
		return nil, err
	}
	return otp.NewTotpConfig(alg, secret, digits, radix, interval)
}

var hotpCmd = &cobra.Command{
	Use:   "hotp",
	Short: "HMAC-based one-time passwords (RFC 4226)",
}

var hotpGenerateCmd = &cobra.Command{
	Use:   "generate SECRET COUNTER",
	Short: "Generate an HOTP code",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := hotpConfigFromFlags(cmd, args[0])
		if err != nil {
			log.Fatalf("Constructing config: %v", err)
		}
		counter, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Fatalf("Parsing counter: %v", err)
		}
		fmt.Println(cfg.Generate(counter))
	},
}

var hotpVerifyCmd = &cobra.Command{
	Use:   "verify SECRET OTP COUNTER RETRIES",
	Short: "Verify an HOTP code with a look-ahead window",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := hotpConfigFromFlags(cmd, args[0])
		if err != nil {
			log.Fatalf("Constructing config: %v", err)
		}
		counter, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			log.Fatalf("Parsing counter: %v", err)
		}
		retries, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			log.Fatalf("Parsing retries: %v", err)
		}
		fmt.Println(cfg.Verify(args[1], counter, retries))
	},
}

var hotpURICmd = &cobra.Command{
	Use:   "uri SECRET ISSUER USER COUNTER",
	Short: "Render an otpauth://hotp provisioning URI",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := hotpConfigFromFlags(cmd, args[0])
		if err != nil {
			log.Fatalf("Constructing config: %v", err)
		}
		counter, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			log.Fatalf("Parsing counter: %v", err)
		}
		uri, err := otpauth.HotpURI(cfg, args[1], args[2], counter)
		if err != nil {
			log.Fatalf("Rendering URI: %v", err)
		}
		fmt.Println(uri)
	},
}

var hotpFromURICmd = &cobra.Command{
	Use:   "from-uri URI",
	Short: "Parse an otpauth://hotp provisioning URI and print its counter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, counter, issuer, user, err := otpauth.HotpFromURI(args[0])
		if err != nil {
			log.Fatalf("Parsing URI: %v", err)
		}
		fmt.Printf("issuer=%s user=%s counter=%d\n", issuer, user, counter)
	},
}

var totpCmd = &cobra.Command{
	Use:   "totp",
	Short: "Time-based one-time passwords (RFC 6238)",
}

var totpGenerateCmd = &cobra.Command{
	Use:   "generate SECRET [TIMESTAMP]",
	Short: "Generate a TOTP code for now, or for an explicit timestamp",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := totpConfigFromFlags(cmd, args[0])
		if err != nil {
			log.Fatalf("Constructing config: %v", err)
		}
		if len(args) == 2 {
			ts, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				log.Fatalf("Parsing timestamp: %v", err)
			}
			fmt.Println(cfg.GenerateAt(ts))
			return
		}
		fmt.Println(cfg.Generate())
	},
}

var totpVerifyCmd = &cobra.Command{
	Use:   "verify SECRET OTP [AFTER DRIFT_AHEAD DRIFT_BEHIND]",
	Short: "Verify a TOTP code for now, with an optional drift window",
	Args:  cobra.RangeArgs(2, 5),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := totpConfigFromFlags(cmd, args[0])
		if err != nil {
			log.Fatalf("Constructing config: %v", err)
		}
		var after, ahead, behind uint64
		if len(args) >= 3 {
			after, _ = strconv.ParseUint(args[2], 10, 64)
		}
		if len(args) >= 4 {
			ahead, _ = strconv.ParseUint(args[3], 10, 64)
		}
		if len(args) >= 5 {
			behind, _ = strconv.ParseUint(args[4], 10, 64)
		}
		fmt.Println(cfg.Verify(args[1], after, ahead, behind))
	},
}

var totpURICmd = &cobra.Command{
	Use:   "uri SECRET ISSUER USER",
	Short: "Render an otpauth://totp provisioning URI",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := totpConfigFromFlags(cmd, args[0])
		if err != nil {
			log.Fatalf("Constructing config: %v", err)
		}
		uri, err := otpauth.TotpURI(cfg, args[1], args[2])
		if err != nil {
			log.Fatalf("Rendering URI: %v", err)
		}
		fmt.Println(uri)
	},
}

var totpFromURICmd = &cobra.Command{
	Use:   "from-uri URI",
	Short: "Parse an otpauth://totp provisioning URI and generate the current code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, issuer, user, err := otpauth.TotpFromURI(args[0])
		if err != nil {
			log.Fatalf("Parsing URI: %v", err)
		}
		fmt.Printf("issuer=%s user=%s code=%s\n", issuer, user, cfg.Generate())
	},
}
