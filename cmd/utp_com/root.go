package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ixonos/utp-com/config"
	"github.com/ixonos/utp-com/payload"
	"github.com/ixonos/utp-com/updater"
)

type rootFlags struct {
	device    string
	command   string
	file      string
	extraInfo bool
	config    string
	logLevel  string
	logFormat string
	progress  bool
	noColor   bool
}

func newRootCmd(e env) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "utp_com -d device -c command [-f file] [-e]",
		Short: "Send commands to a Freescale/NXP target over UTP",
		Long: `utp_com sends one command to a target running the Freescale Update
Transfer Protocol, tunnelled through SCSI commands on a SCSI generic device.

Without -f the command is executed and utp_com polls until the target
reports completion. With -f the file is announced with the command and
sent to the target in 64 KiB chunks.

Settings not given on the command line are read from --config.`,
		Example: `  # Print the target kernel version
  sudo utp_com -d /dev/sdb -c "$ uname -r"

  # Stream a root filesystem into tar on the target
  sudo utp_com -d /dev/sdb -c "pipe tar -xjv -C /mnt/rootfs" -f rootfs.tar.bz2

  # Dump every descriptor and status byte
  sudo utp_com -d /dev/sdb -c "$ sync" -e`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.noColor {
				color.NoColor = true
			}
			err := run(cmd, e, flags)
			if updater.KindOf(err) == updater.KindArgument {
				cmd.SetOut(e.stderr)
				_ = cmd.Usage()
			}
			return err
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &updater.ArgumentError{Field: "flags", Reason: err.Error()}
	})

	cmd.Flags().StringVarP(&flags.device, "device", "d", "", "SCSI generic device, e.g. /dev/sdb (required unless set in --config)")
	cmd.Flags().StringVarP(&flags.command, "command", "c", "", "Command to run on the target (required)")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "File to send to the target")
	cmd.Flags().BoolVarP(&flags.extraInfo, "extra-info", "e", false, "Print descriptor and status bytes, log at debug level")
	cmd.Flags().StringVar(&flags.config, "config", "", "YAML config file")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug|info|error (default from config, else info)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log format: text|json (default from config, else text)")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Print progress lines")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored status output")

	return cmd
}

func run(cmd *cobra.Command, e env, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if flags.command == "" {
		return &updater.ArgumentError{Field: "command", Reason: "required flag -c/--command not set"}
	}
	if cfg.Device == "" {
		return &updater.ArgumentError{Field: "device", Reason: "required flag -d/--device not set"}
	}

	logger := newLogger(e.stderr, cfg.Log)

	req := updater.Request{Command: flags.command}
	if flags.file != "" {
		size, err := payload.Size(flags.file)
		if err != nil {
			return err
		}
		if err := updater.CheckPayloadSize(size); err != nil {
			return err
		}

		p, err := payload.Load(flags.file)
		if err != nil {
			return err
		}
		logger.Debug("read from file", "path", flags.file, "bytes", p.Len())
		req.Payload = p
	}

	opts := append(cfg.Options(), updater.WithLogger(logger))
	if cfg.Diagnostics {
		opts = append(opts, updater.WithDiagnostics(e.stdout))
	}
	if flags.progress {
		opts = append(opts, updater.WithProgressCallback(progressPrinter(e.stdout)))
	}

	res, err := updater.NewSession(e.open, opts...).Run(cmd.Context(), cfg.Device, req)
	if err != nil {
		return err
	}

	reportResult(e.stdout, res)
	return nil
}

// loadConfig reads --config, if given, and applies the flags over it.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.config != "" {
		loaded, err := config.Load(flags.config)
		if err != nil {
			return nil, &updater.ArgumentError{Field: "config", Reason: err.Error()}
		}
		cfg = loaded
	}

	if flags.device != "" {
		cfg.Device = flags.device
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if flags.extraInfo {
		cfg.Diagnostics = true
		cfg.Log.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, &updater.ArgumentError{Field: "flags", Reason: err.Error()}
	}
	return cfg, nil
}
