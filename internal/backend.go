package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acroloop/acroloop/internal/api"
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/controller"
	"github.com/acroloop/acroloop/internal/imu"
	"github.com/acroloop/acroloop/internal/mixer"
	"github.com/acroloop/acroloop/internal/persistence"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/rc"
	"github.com/acroloop/acroloop/internal/statistics"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	loop := InitializeObjects(pers)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				http.Handle(endpoint, handler)
				server := &http.Server{Addr: addr, Handler: handler}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				select {
				case <-ctx.Done():
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					return server.Shutdown(timeoutCtx)
				}
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST API
			restService := api.CreateRestService(loop)

			g.Add(func() error {
				host := configuration.CurrentConfig.Api.Host
				port := configuration.CurrentConfig.Api.Port
				addr := fmt.Sprintf("%s:%d", host, port)
				if err := restService.Start(addr); err != nil {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
				}

				select {
				case <-ctx.Done():
					ui.Info("Stopping REST api server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					return restService.Shutdown(timeoutCtx)
				}
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api server: " + err.Error())
				} else {
					ui.Info("REST api server stopped.")
				}
			})
		}
	}
	{
		// === rate control loop
		g.Add(func() error {
			err := loop.Run(ctx)
			ui.Info("Rate loop stopped.")
			if err != nil {
				panic(err)
			}
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, os.Kill)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func InitializeObjects(pers persistence.Persistence) controller.RateLoop {
	config := configuration.CurrentConfig

	resolved, err := config.ResolveProfile(config.ActiveProfile)
	if err != nil {
		ui.Fatal("Unable to resolve active profile '%s': %v", config.ActiveProfile, err)
	}
	profile := pid.ProfileFromConfig(resolved)
	rates := pid.RatesFromConfig(config.Rates)

	imuConfig := config.Imu
	if imuConfig.Virtual == nil && imuConfig.File == nil {
		// validation has warned already, run against a still virtual imu
		imuConfig.Virtual = &configuration.VirtualImuConfig{}
	}
	imuSource, err := imu.NewSource(imuConfig)
	if err != nil {
		ui.Fatal("Unable to process imu configuration: %v", err)
	}
	imu.SourceMap.Set(imuSource.GetId(), imuSource)

	rcConfig := config.Rc
	if rcConfig.Virtual == nil {
		rcConfig.Virtual = &configuration.VirtualRcConfig{}
	}
	rcSource, err := rc.NewSource(rcConfig, config.Loop.StickCenter)
	if err != nil {
		ui.Fatal("Unable to process rc configuration: %v", err)
	}
	rc.SourceMap.Set(rcSource.GetId(), rcSource)

	mixerConfig := config.Mixer
	if mixerConfig.File == nil && mixerConfig.Log == nil && mixerConfig.Null == nil {
		mixerConfig.Log = &configuration.LogMixerConfig{}
	}
	mix, err := mixer.NewMixer(mixerConfig)
	if err != nil {
		ui.Fatal("Unable to process mixer configuration: %v", err)
	}
	mixer.MixerMap.Set(mix.GetId(), mix)

	loop := controller.NewRateLoop(config.Loop, pers, imuSource, rcSource, mix, profile, rates)
	loop.SetAutotuneHook(func(axis pid.Axis, terms pid.AxisTerms) {
		ui.Debug("Autotune %s: P %d I %d D %d", axis, terms.P, terms.I, terms.D)
	})

	statistics.Register(statistics.NewLoopCollector(loop))
	statistics.Register(statistics.NewPidCollector(loop))
	statistics.Register(statistics.NewGyroCollector(loop))

	return loop
}
