/*
 * Copyright 2026 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics exposes Prometheus collectors for remote operation and
// job lifecycle instrumentation. Collectors live in a standalone package to
// avoid import cycles between the gateway and job manager packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "godrac_remote_operations_total",
		Help: "Remote WS-Management exchanges by operation and outcome.",
	}, []string{"operation", "outcome"})

	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "godrac_remote_operation_duration_seconds",
		Help:    "End-to-end latency of remote exchanges, retries included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	retriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "godrac_remote_retries_total",
		Help: "Transient failures that triggered a retry.",
	}, []string{"operation"})

	jobsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "godrac_jobs_created_total",
		Help: "Jobs accepted by the remote controller by kind.",
	}, []string{"kind"})

	jobPollsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "godrac_job_polls_total",
		Help: "Job status polls issued while waiting for completion.",
	})
)

// Register registers all collectors on the given registry (or the default
// registerer if nil). Already-registered collectors are ignored.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	collectors := []prometheus.Collector{
		operationsTotal,
		operationDuration,
		retriesTotal,
		jobsCreatedTotal,
		jobPollsTotal,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	return nil
}

// RecordOperation records one completed exchange with its outcome (success,
// fault, or transient) and total duration.
func RecordOperation(operation, outcome string, duration time.Duration) {
	operationsTotal.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRetry records a transient failure about to be retried.
func RecordRetry(operation string) {
	retriesTotal.WithLabelValues(operation).Inc()
}

// RecordJobCreated records a job accepted by the remote controller.
func RecordJobCreated(kind string) {
	jobsCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordJobPoll records one status poll of a pending job.
func RecordJobPoll() {
	jobPollsTotal.Inc()
}
