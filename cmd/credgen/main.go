// Command credgen is a utility for working with aeonflux credentials:
// generating issuer keys, issuing credentials over clear attributes,
// producing selective-disclosure presentations, and verifying them.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anupsv/aeonflux-credentials/credential"
	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/obslog"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/issuer"
	"github.com/anupsv/aeonflux-credentials/user"
)

// Command represents a subcommand.
type Command struct {
	Name        string
	Description string
	Execute     func(args []string) error
}

func main() {
	obslog.Init(zerolog.New(os.Stderr).With().Timestamp().Logger())

	commands := []Command{
		{Name: "keygen", Description: "Generate an issuer secret key and system parameters", Execute: cmdKeyGen},
		{Name: "issue", Description: "Issue a credential over clear attributes", Execute: cmdIssue},
		{Name: "show", Description: "Produce a selective-disclosure presentation", Execute: cmdShow},
		{Name: "verify", Description: "Verify a presentation", Execute: cmdVerify},
	}

	if len(os.Args) < 2 {
		showHelp(commands)
		os.Exit(1)
	}

	cmdName := os.Args[1]
	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Execute(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmdName)
	showHelp(commands)
	os.Exit(1)
}

func showHelp(commands []Command) {
	fmt.Println("credgen - issue and verify aeonflux anonymous credentials")
	fmt.Println("\nUsage:")
	fmt.Println("  credgen <command> [options]")
	fmt.Println("\nAvailable Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-8s %s\n", cmd.Name, cmd.Description)
	}
}

// writeIssuerKeyFile bundles the system parameters and issuer secret key
// needed to issue or verify into one file: SystemParameters.MarshalBinary()
// (96 bytes) || SecretKey.MarshalBinary() (32*(n+1) bytes).
func writeIssuerKeyFile(path string, sp *params.SystemParameters, sk *amac.SecretKey) error {
	spBytes, err := sp.MarshalBinary()
	if err != nil {
		return err
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(spBytes, skBytes...), 0o600)
}

func readIssuerKeyFile(path string) (*params.SystemParameters, *amac.SecretKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read issuer key file: %w", err)
	}
	const spLen = 96
	if len(data) <= spLen {
		return nil, nil, fmt.Errorf("issuer key file too short")
	}
	var sp params.SystemParameters
	if err := sp.UnmarshalBinary(data[:spLen]); err != nil {
		return nil, nil, fmt.Errorf("decode system parameters: %w", err)
	}
	var sk amac.SecretKey
	if err := sk.UnmarshalBinary(data[spLen:]); err != nil {
		return nil, nil, fmt.Errorf("decode issuer secret key: %w", err)
	}
	return &sp, &sk, nil
}

func cmdKeyGen(args []string) error {
	flagSet := flag.NewFlagSet("keygen", flag.ExitOnError)
	numAttrs := flagSet.Int("attrs", 1, "Number of attributes the issuer key supports")
	out := flagSet.String("out", "issuer.key", "Output file for the issuer key")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *numAttrs < 1 {
		return fmt.Errorf("attrs must be at least 1")
	}

	sp, err := params.NewFromSeed([]byte("credgen default system parameters"))
	if err != nil {
		return fmt.Errorf("derive system parameters: %w", err)
	}
	sk, err := amac.GenerateSecretKey(*numAttrs, rand.Reader)
	if err != nil {
		return fmt.Errorf("generate issuer key: %w", err)
	}
	if err := writeIssuerKeyFile(*out, sp, sk); err != nil {
		return fmt.Errorf("write issuer key file: %w", err)
	}

	obslog.Infow("generated issuer key", "num_attributes", *numAttrs, "path", *out)
	fmt.Printf("Issuer key for %d attributes written to %s\n", *numAttrs, *out)
	return nil
}

func parseAttrs(s string) ([]group.Scalar, error) {
	parts := strings.Split(s, ",")
	attrs := make([]group.Scalar, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("attribute %q is not a non-negative integer: %w", p, err)
		}
		attrs[i] = group.ScalarFromUint64(v)
	}
	return attrs, nil
}

func cmdIssue(args []string) error {
	flagSet := flag.NewFlagSet("issue", flag.ExitOnError)
	keyFile := flagSet.String("key", "issuer.key", "Issuer key file")
	attrsFlag := flagSet.String("attrs", "", "Comma-separated attribute values")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *attrsFlag == "" {
		return fmt.Errorf("attrs is required")
	}

	sp, sk, err := readIssuerKeyFile(*keyFile)
	if err != nil {
		return err
	}
	attrs, err := parseAttrs(*attrsFlag)
	if err != nil {
		return err
	}
	if len(attrs) != len(sk.Xs) {
		return fmt.Errorf("issuer key supports %d attributes, but %d provided", len(sk.Xs), len(attrs))
	}

	iss := &issuer.Issuer{SystemParams: sp, Key: sk}
	resp, err := iss.IssueRevealed(attrs, rand.Reader)
	if err != nil {
		return fmt.Errorf("issue credential: %w", err)
	}
	if err := issuer.VerifyIssuance(sp, iss.PublicKey(), attrs, resp); err != nil {
		return fmt.Errorf("issuer's own issuance proof failed to verify: %w", err)
	}

	cred := credential.New(resp.Tag, attrs)
	credBytes, err := cred.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	proofBytes, err := resp.Proof.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode issuance proof: %w", err)
	}

	fmt.Printf("Credential: %s\n", base64.StdEncoding.EncodeToString(credBytes))
	fmt.Printf("Issuance proof: %s\n", base64.StdEncoding.EncodeToString(proofBytes))
	obslog.Infow("issued credential", "num_attributes", len(attrs))
	return nil
}

func cmdShow(args []string) error {
	flagSet := flag.NewFlagSet("show", flag.ExitOnError)
	keyFile := flagSet.String("key", "issuer.key", "Issuer key file (used for its system parameters and public key)")
	credFlag := flagSet.String("cred", "", "Base64-encoded credential, as printed by issue")
	revealFlag := flagSet.String("reveal", "", "Comma-separated attribute indices to reveal")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *credFlag == "" {
		return fmt.Errorf("cred is required")
	}

	sp, sk, err := readIssuerKeyFile(*keyFile)
	if err != nil {
		return err
	}
	pub := sk.Public(sp)

	credBytes, err := base64.StdEncoding.DecodeString(*credFlag)
	if err != nil {
		return fmt.Errorf("decode credential: %w", err)
	}
	var cred credential.Credential
	if err := cred.UnmarshalBinary(credBytes); err != nil {
		return fmt.Errorf("unmarshal credential: %w", err)
	}

	var reveal []int
	if *revealFlag != "" {
		for _, p := range strings.Split(*revealFlag, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("reveal index %q is not an integer: %w", p, err)
			}
			reveal = append(reveal, idx)
		}
	}

	holder := user.NewWithCredential(sp, pub, &user.Credential{Tag: cred.Tag, Attributes: cred.Attributes})
	presentation, err := holder.Show(reveal, rand.Reader)
	if err != nil {
		return fmt.Errorf("produce presentation: %w", err)
	}

	presBytes, err := presentation.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode presentation: %w", err)
	}
	fmt.Printf("Presentation: %s\n", base64.StdEncoding.EncodeToString(presBytes))
	obslog.Infow("produced presentation", "num_revealed", len(reveal))
	return nil
}

func cmdVerify(args []string) error {
	flagSet := flag.NewFlagSet("verify", flag.ExitOnError)
	keyFile := flagSet.String("key", "issuer.key", "Issuer key file")
	presFlag := flagSet.String("presentation", "", "Base64-encoded presentation, as printed by show")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *presFlag == "" {
		return fmt.Errorf("presentation is required")
	}

	sp, sk, err := readIssuerKeyFile(*keyFile)
	if err != nil {
		return err
	}

	presBytes, err := base64.StdEncoding.DecodeString(*presFlag)
	if err != nil {
		return fmt.Errorf("decode presentation: %w", err)
	}
	var presentation issuer.Presentation
	if err := presentation.UnmarshalBinary(presBytes); err != nil {
		return fmt.Errorf("unmarshal presentation: %w", err)
	}

	iss := &issuer.Issuer{SystemParams: sp, Key: sk}
	if err := iss.Verify(&presentation); err != nil {
		obslog.Warnw("presentation verification failed", "error", err.Error())
		return fmt.Errorf("presentation verification failed: %w", err)
	}

	fmt.Println("Presentation verified successfully!")
	for i, m := range presentation.Revealed {
		fmt.Printf("  revealed[%d] = %s\n", i, m.BigInt().String())
	}
	obslog.Infow("verified presentation", "num_revealed", len(presentation.Revealed))
	return nil
}
