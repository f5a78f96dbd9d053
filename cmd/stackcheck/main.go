package main

import (
	"context"
	"dstructs/internal/harness"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	// 报告占用 stdout，日志写到 stderr
	log.Logger = log.Output(os.Stderr)

	env := os.Getenv("env")
	switch env {
	case "release", "test":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	flags := pflag.NewFlagSet("stackcheck", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: stackcheck [flags] [group|name ...]\n")
		flags.PrintDefaults()
	}
	configPath := flags.StringP("config", "c", "", "配置文件路径，默认在当前目录查找 stackcheck[.<env>].yaml")
	flags.StringP("format", "f", harness.FormatJSON, "报告格式: json | msgpack | yaml")
	flags.StringP("output", "o", "", "报告输出文件，默认写到标准输出")
	flags.IntP("workers", "w", 4, "并发执行场景的协程数")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	log.Info().Msgf("stackcheck starting... running in [ %s ] mode", env)
	cfg, err := harness.Load(*configPath, flags)
	if err != nil {
		log.Error().Stack().Err(err).Msg("加载配置失败")
		return 1
	}

	runner, err := harness.NewRunner(cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("创建执行器失败")
		return 1
	}
	defer runner.Release()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := runner.Run(ctx, flags.Args())
	if rep == nil {
		log.Error().Stack().Err(err).Msg("执行场景失败")
		return 1
	}
	if werr := harness.WriteReport(os.Stdout, cfg.Report, rep); werr != nil {
		log.Error().Stack().Err(werr).Msg("写入报告失败")
		return 1
	}
	if err != nil {
		log.Warn().Err(err).Msg("执行被中断")
		return 1
	}
	if rep.Failed > 0 {
		return 1
	}
	return 0
}
