// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import "github.com/spacetimechain/lightcore/metrics"

var (
	metricVerifyCount    = metrics.LazyLoadCounterVec("consensus_verify_count", []string{"result"})
	metricVerifyDuration = metrics.LazyLoadHistogram("consensus_verify_duration_us", metrics.BucketVerifyMicros)
)
