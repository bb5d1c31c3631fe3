package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/longboard/packages/core/config"
	"github.com/abdul-hamid-achik/longboard/packages/http"
	"github.com/abdul-hamid-achik/longboard/packages/jar"
	"github.com/abdul-hamid-achik/longboard/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "longboard <method> <url>",
	Short: "the easy way to surf",
	Long: `longboard issues a single HTTP request and renders the response.
With a terminal attached the response is shown as highlighted sections
(headers, status, body); piped output gets the raw body bytes.

Examples:
  longboard get https://httpbin.org/json
  longboard post https://httpbin.org/post -b '{"name":"kim"}' -h Content-Type=application/json
  cat payload.json | longboard put https://httpbin.org/put -c hyper
  longboard get https://httpbin.org/cookies/set?k=v -j ~/.longboard.cookies`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCommand,
}

var (
	fileFlag     string
	bodyFlag     string
	headersFlag  []string
	clientFlag   string
	jarFlag      string
	timeoutFlag  time.Duration
	insecureFlag bool
	noColorFlag  bool
	verboseFlag  bool
	configFlag   string

	// distinguishes cobra's own flag/arg failures from request errors
	commandStarted bool
)

func init() {
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "provide the path to a file to use as the request body")
	rootCmd.Flags().StringVarP(&bodyFlag, "body", "b", "", "provide a request body on the command line")
	rootCmd.Flags().StringArrayVarP(&headersFlag, "headers", "h", nil, "provide headers in the form -h KEY1=VALUE1 -h KEY2=VALUE2")
	rootCmd.Flags().StringVarP(&clientFlag, "client", "c", "h1", "http backend. options: h1, curl, hyper")
	rootCmd.Flags().StringVarP(&jarFlag, "jar", "j", "", "path to a cookie-jar file (created if absent)")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "request timeout (0 = none)")
	rootCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", false, "skip TLS certificate verification")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "print the outgoing request to stderr")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "path to config file")

	// the -h shorthand belongs to --headers; registering --help here
	// keeps cobra from claiming it
	rootCmd.Flags().Bool("help", false, "help for longboard")

	rootCmd.AddCommand(versionCmd)
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		output.FormatError(err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if !commandStarted {
		return ExitUsageError
	}
	var parseErr *http.ParseError
	var cfgErr *configError
	var pathErr *os.PathError
	switch {
	case errors.As(err, &parseErr):
		return ExitUsageError
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitNetworkError
	}
}

type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func runCommand(cmd *cobra.Command, args []string) error {
	commandStarted = true

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return &configError{err: err}
	}
	applyConfig(cmd, cfg)

	req, err := buildRequest(cmd, cfg, args)
	if err != nil {
		return err
	}

	backend, err := http.ParseBackend(clientFlag)
	if err != nil {
		return err
	}

	opts := http.Options{Timeout: timeoutFlag, Insecure: insecureFlag}
	var cookieJar *jar.Jar
	if jarFlag != "" {
		cookieJar, err = jar.Open(jarFlag)
		if err != nil {
			return err
		}
		opts.Jar = cookieJar
	}
	client := http.New(backend, opts)

	if verboseFlag {
		printRequest(req, backend)
	}

	resp, err := client.Do(cmd.Context(), req)
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithTerminal(output.IsTerminal(os.Stdout)),
		output.WithNoColor(noColorFlag),
	)
	if err := renderer.Render(resp, req.URL); err != nil {
		return err
	}

	if cookieJar != nil {
		return cookieJar.Save()
	}
	return nil
}

// applyConfig fills in flags the user did not set explicitly.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("client") && cfg.Client != "" {
		clientFlag = cfg.Client
	}
	if !cmd.Flags().Changed("jar") && cfg.Jar != "" {
		jarFlag = cfg.Jar
	}
	if !cmd.Flags().Changed("timeout") && cfg.Timeout > 0 {
		timeoutFlag = time.Duration(cfg.Timeout) * time.Millisecond
	}
	if !cmd.Flags().Changed("insecure") {
		insecureFlag = insecureFlag || cfg.GetInsecure()
	}
	if !cmd.Flags().Changed("no-color") {
		noColorFlag = noColorFlag || cfg.GetNoColor()
	}
}

func buildRequest(cmd *cobra.Command, cfg *config.Config, args []string) (*http.Request, error) {
	method, err := http.ParseMethod(args[0])
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, args[1])
	if err != nil {
		return nil, err
	}

	// config default headers first, sorted for a stable order, then
	// command-line headers in the order given
	keys := make([]string, 0, len(cfg.Headers))
	for k := range cfg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		req.AddHeader(k, cfg.Headers[k])
	}
	for _, raw := range headersFlag {
		h, err := http.ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		req.AddHeader(h.Key, h.Value)
	}

	req.Body = http.BodySource{FilePath: fileFlag}
	if cmd.Flags().Changed("body") {
		req.Body.Inline = bodyFlag
		req.Body.HasInline = true
	}
	if req.Body.Empty() && !output.IsTerminal(os.Stdin) {
		req.Body.Stdin = bufio.NewReader(os.Stdin)
	}
	return req, nil
}

func printRequest(req *http.Request, backend http.Backend) {
	faint := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(os.Stderr, faint(fmt.Sprintf("> %s %s [%s]", req.Method, req.URL, backend)))
	for _, h := range req.Headers {
		fmt.Fprintln(os.Stderr, faint("> "+h.Key+": "+h.Value))
	}
}
