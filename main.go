package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/stephenc/dnstemplate/config"
)

const version string = "0.3.0"

var (
	showVersion   = kingpin.Flag("version", "Print version information").Bool()
	configFile    = kingpin.Flag("config.path", "Path to config file").Default("").String()
	hostVars      = kingpin.Flag("var", "Define a host variable N with the value being the resolved addresses of HOST. If HOST is omitted then N doubles as the hostname, so '--var www.example.com' is the same as '--var www.example.com:www.example.com'").PlaceHolder("N[:HOST]").Strings()
	constVars     = kingpin.Flag("const", "Define a constant N with the literal value VAL").PlaceHolder("N=VAL").Strings()
	outputPath    = kingpin.Flag("out", "Output file name. Use '-' to send the output to standard out. If not specified the name is inferred from the template name: '.hbs' is stripped, otherwise '.out' is appended").String()
	watchMode     = kingpin.Flag("watch", "Keep running and re-render whenever DNS changes").Bool()
	watchInterval = kingpin.Flag("watch.interval", "Interval between DNS rechecks in watch mode").Default("1s").Duration()
	onChange      = kingpin.Flag("on-change", "Command to run every time the output file is updated; repeat the flag for arguments").Strings()
	notifyFirst   = kingpin.Flag("notify.first-write", "Run the on-change command after the first write as well").Default("true").Bool()
	dnsTimeout    = kingpin.Flag("dns.timeout", "Timeout per DNS lookup").Default("1s").Duration()
	dnsNameServer = kingpin.Flag("dns.nameserver", "DNS server used to resolve host variables").Default("").String()
	dnsIPv6       = kingpin.Flag("dns.ipv6", "Include AAAA records in resolved addresses").Bool()
	listenAddress = kingpin.Flag("web.listen-address", "Address on which to expose metrics in watch mode (empty to disable)").Default("").String()
	metricsPath   = kingpin.Flag("web.telemetry-path", "Path under which to expose metrics").Default("/metrics").String()
	tailnet       = kingpin.Flag("tailnet", "Define a host variable for every device in this tailnet").Default("").String()
	logLevel      = kingpin.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error, fatal]").Default("info").String()
	templateArg   = kingpin.Arg("template", "Handlebars template file").String()
)

func main() {
	kingpin.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	setLogLevel(*logLevel)

	cfg, err := loadConfig()
	if err != nil {
		kingpin.FatalUsage("could not load configuration: %v", err)
	}

	if cfg.Template == "" {
		kingpin.FatalUsage("a template file must be given, either as argument or as 'template' in the config file")
	}
	if len(cfg.Vars) == 0 && len(cfg.Consts) == 0 {
		kingpin.FatalUsage("at least one 'var' or 'const' must be defined")
	}
	if err := cfg.Validate(); err != nil {
		kingpin.FatalUsage("%v", err)
	}
	if cfg.Output == "" {
		cfg.Output = inferOutputPath(cfg.Template)
	}
	if *watchMode && cfg.Output == "-" {
		kingpin.FatalUsage("cannot use --watch with output to standard out")
	}

	tpl, err := loadTemplate(cfg.Template)
	if err != nil {
		log.Errorln(err)
		os.Exit(2)
	}

	r := &runner{
		bindings: cfg.Vars,
		consts:   cfg.Consts,
		binder: &binder{
			resolver: setupResolver(cfg.DNS.Nameserver),
			timeout:  cfg.DNS.Timeout.Duration(),
			ipv6:     cfg.DNS.IPv6,
		},
		renderer:      tpl,
		writer:        &outputWriter{path: cfg.Output},
		notifier:      execNotifier{},
		command:       cfg.Watch.Command,
		notifyOnFirst: *notifyFirst,
		clock:         clockwork.NewRealClock(),
		interval:      cfg.Watch.Interval.Duration(),
		stdout:        cfg.Output == "-",
	}

	if !*watchMode {
		if err := r.Once(context.Background()); err != nil {
			log.Errorln(err)
			os.Exit(2)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload, err := watchTemplate(ctx, tpl)
	if err != nil {
		log.Errorln(err)
		os.Exit(2)
	}
	r.reload = reload

	if *listenAddress != "" {
		r.metrics = newWatchMetrics()
		startMetricsServer(*listenAddress, *metricsPath, r.metrics)
	}

	log.Infof("Starting dns-template (Version: %s)", version)
	r.Watch(ctx)
}

func printVersion() {
	fmt.Println("dns-template")
	fmt.Printf("Version: %s\n", version)
	fmt.Println("Renders templates from resolved DNS addresses")
}

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}

	if *configFile != "" {
		f, err := os.Open(*configFile)
		if err != nil {
			return nil, fmt.Errorf("cannot load config file: %w", err)
		}
		defer f.Close()

		cfg, err = config.FromYAML(f)
		if err != nil {
			return nil, err
		}
	}

	if err := addFlagsToConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// addFlagsToConfig updates cfg with command line flag values, unless the
// config has non-zero values.
func addFlagsToConfig(cfg *config.Config) error {
	if cfg.Template == "" {
		cfg.Template = *templateArg
	}
	if cfg.Output == "" {
		cfg.Output = *outputPath
	}
	for _, s := range *hostVars {
		b, err := config.ParseBinding(s)
		if err != nil {
			return err
		}
		cfg.Vars = append(cfg.Vars, b)
	}
	for _, s := range *constVars {
		name, value, err := config.ParseConst(s)
		if err != nil {
			return err
		}
		if cfg.Consts == nil {
			cfg.Consts = make(map[string]string)
		}
		if _, dup := cfg.Consts[name]; dup {
			return fmt.Errorf("constant %q defined more than once", name)
		}
		cfg.Consts[name] = value
	}
	if *tailnet != "" {
		cfg.Vars = append(cfg.Vars, tsBindings(*tailnet)...)
	}
	if cfg.Watch.Interval == 0 {
		cfg.Watch.Interval.Set(*watchInterval)
	}
	if len(cfg.Watch.Command) == 0 {
		cfg.Watch.Command = *onChange
	}
	if cfg.DNS.Timeout == 0 {
		cfg.DNS.Timeout.Set(*dnsTimeout)
	}
	if cfg.DNS.Nameserver == "" {
		cfg.DNS.Nameserver = *dnsNameServer
	}
	if !cfg.DNS.IPv6 {
		cfg.DNS.IPv6 = *dnsIPv6
	}
	return nil
}
