// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/spacetimechain/lightcore/metrics"

var (
	metricImportCount        = metrics.LazyLoadCounterVec("chain_import_count", []string{"result"})
	metricReorgCount         = metrics.LazyLoadCounter("chain_reorg_count")
	metricReorgDepth         = metrics.LazyLoadHistogram("chain_reorg_depth", metrics.BucketBatchSize)
	metricBatchSize          = metrics.LazyLoadHistogram("chain_import_batch_size", metrics.BucketBatchSize)
	metricBestWeight         = metrics.LazyLoadGauge("chain_best_weight")
	metricBestHeight         = metrics.LazyLoadGauge("chain_best_height")
	metricTreeSize           = metrics.LazyLoadGauge("chain_tree_size")
	metricPrunedCount        = metrics.LazyLoadCounter("chain_pruned_count")
	metricRejectCacheHitMiss = metrics.LazyLoadGaugeVec("chain_reject_cache_hit_miss_count", []string{"event"})
)
