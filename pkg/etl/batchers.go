package etl

// Batcher groups transformed records into batches for loading. Implement this
// interface on your job when the default size-based batching is insufficient.
//
// The pipeline calls Batch whenever the pending buffer reaches LoadBatchSize,
// and once more to flush remaining records at the end of the run.
//
// The default batcher (used when Batcher is not implemented) is equivalent to
// SizeBatcher with the resolved LoadBatchSize.
//
// When to implement a custom Batcher:
//   - Batch size depends on record weight (e.g., SQL parameter count limits)
//   - Records must be grouped so each Load call targets a single unit of work
type Batcher[T any] interface {
	// Batch groups items into batches for loading.
	Batch(items []T) [][]T
}

// BatcherFunc adapts a plain function to the [Batcher] interface.
type BatcherFunc[T any] func(items []T) [][]T

func (f BatcherFunc[T]) Batch(items []T) [][]T {
	return f(items)
}

// NoBatcher returns items as a single batch (no batching).
func NoBatcher[T any]() Batcher[T] {
	return BatcherFunc[T](func(items []T) [][]T {
		if len(items) == 0 {
			return nil
		}
		return [][]T{items}
	})
}

// SizeBatcher creates batches with a maximum number of items per batch.
//
// Example:
//
//	// Create batches of up to 100 items each
//	batcher := etl.SizeBatcher[MyRecord](100)
func SizeBatcher[T any](maxSize int) Batcher[T] {
	return BatcherFunc[T](func(items []T) [][]T {
		if len(items) == 0 || maxSize <= 0 {
			return nil
		}
		return chunk(items, maxSize)
	})
}

// WeightedBatcher creates batches where the total weight does not exceed
// maxWeight. The weigher function returns the weight of each individual item.
// Items are accumulated into a batch until adding the next item would exceed
// maxWeight, at which point a new batch is started.
//
// If a single item exceeds maxWeight, it is placed in its own batch (never
// dropped).
//
// Common use cases:
//   - SQL parameter limits: each record contributes N parameters to an INSERT
//   - Payload size limits: each record contributes a variable number of bytes
//
// Example:
//
//	// Batch by SQL parameter count (17 columns per row, 65535 param limit)
//	batcher := etl.WeightedBatcher(func(t Target) int { return 17 }, 65535)
func WeightedBatcher[T any](weigher func(T) int, maxWeight int) Batcher[T] {
	return BatcherFunc[T](func(items []T) [][]T {
		if len(items) == 0 || maxWeight <= 0 {
			return nil
		}

		var batches [][]T
		var current []T
		currentWeight := 0

		for _, item := range items {
			w := weigher(item)

			// If adding this item would exceed the limit, flush current batch
			if len(current) > 0 && currentWeight+w > maxWeight {
				batches = append(batches, current)
				current = nil
				currentWeight = 0
			}

			current = append(current, item)
			currentWeight += w
		}

		if len(current) > 0 {
			batches = append(batches, current)
		}

		return batches
	})
}

// chunk splits a slice into sub-slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 || size <= 0 {
		return nil
	}

	numChunks := (len(items) + size - 1) / size
	result := make([][]T, 0, numChunks)

	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		result = append(result, items[i:end])
	}

	return result
}
