package metrics

import (
	"strconv"
	"time"

	"github.com/cqlbridge/cqlbridge-go/trace"
)

// Bridge makes trace.Bridge publishing session, row set and task metrics
func Bridge(config Config) (t trace.Bridge) {
	config = config.WithSystem("cqlbridge")

	sessionConfig := config.WithSystem("session")
	connects := sessionConfig.CounterVec("connects", "status")
	prepares := sessionConfig.CounterVec("prepares", "status")
	executes := sessionConfig.CounterVec("executes", "status", "prepared")
	executeLatency := sessionConfig.TimerVec("execute_latency", "prepared")
	keyspaceSwitches := sessionConfig.CounterVec("use_keyspace", "status")

	rowSetConfig := config.WithSystem("rowset")
	rows := rowSetConfig.CounterVec("rows")
	exhausted := rowSetConfig.CounterVec("exhausted")
	rowErrors := rowSetConfig.CounterVec("errors", "status")

	taskConfig := config.WithSystem("task")
	tasks := taskConfig.CounterVec("tasks", "name", "status", "blocking")
	inflight := taskConfig.GaugeVec("inflight", "name")
	taskLatency := taskConfig.TimerVec("latency", "name")

	sessionEvents := config.Details()&trace.BridgeSessionEvents != 0
	rowSetEvents := config.Details()&trace.BridgeRowSetEvents != 0
	taskEvents := config.Details()&trace.BridgeTaskEvents != 0

	if sessionEvents {
		t.OnSessionConnect = func(info trace.BridgeSessionConnectStartInfo) func(trace.BridgeSessionConnectDoneInfo) {
			return func(info trace.BridgeSessionConnectDoneInfo) {
				connects.With(map[string]string{"status": errorBrief(info.Error)}).Inc()
			}
		}
		t.OnSessionPrepare = func(info trace.BridgeSessionPrepareStartInfo) func(trace.BridgeSessionPrepareDoneInfo) {
			return func(info trace.BridgeSessionPrepareDoneInfo) {
				prepares.With(map[string]string{"status": errorBrief(info.Error)}).Inc()
			}
		}
		t.OnSessionExecute = func(info trace.BridgeSessionExecuteStartInfo) func(trace.BridgeSessionExecuteDoneInfo) {
			prepared := strconv.FormatBool(info.Prepared)
			start := time.Now()

			return func(info trace.BridgeSessionExecuteDoneInfo) {
				executes.With(map[string]string{
					"status":   errorBrief(info.Error),
					"prepared": prepared,
				}).Inc()
				executeLatency.With(map[string]string{"prepared": prepared}).Record(time.Since(start))
			}
		}
		t.OnSessionUseKeyspace = func(
			info trace.BridgeSessionUseKeyspaceStartInfo,
		) func(
			trace.BridgeSessionUseKeyspaceDoneInfo,
		) {
			return func(info trace.BridgeSessionUseKeyspaceDoneInfo) {
				keyspaceSwitches.With(map[string]string{"status": errorBrief(info.Error)}).Inc()
			}
		}
	}

	if rowSetEvents {
		t.OnRowSetNextRow = func(info trace.BridgeRowSetNextRowStartInfo) func(trace.BridgeRowSetNextRowDoneInfo) {
			return func(info trace.BridgeRowSetNextRowDoneInfo) {
				switch {
				case info.Error != nil:
					rowErrors.With(map[string]string{"status": errorBrief(info.Error)}).Inc()
				case info.HasRow:
					rows.With(nil).Inc()
				default:
					exhausted.With(nil).Inc()
				}
			}
		}
	}

	if taskEvents {
		t.OnTask = func(info trace.BridgeTaskStartInfo) func(trace.BridgeTaskDoneInfo) {
			name := info.Name
			blocking := strconv.FormatBool(info.Blocking)
			inflight.With(map[string]string{"name": name}).Add(1)
			start := time.Now()

			return func(info trace.BridgeTaskDoneInfo) {
				inflight.With(map[string]string{"name": name}).Add(-1)
				taskLatency.With(map[string]string{"name": name}).Record(time.Since(start))
				tasks.With(map[string]string{
					"name":     name,
					"status":   errorBrief(info.Error),
					"blocking": blocking,
				}).Inc()
			}
		}
	}

	return t
}
