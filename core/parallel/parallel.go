// Package parallel は行ごとに独立した処理を CPU コア数のチャンクに分けて実行する。
// dataset.AddConstant が大きな計画行列の行を並列に埋めるのに使う。
// fn は互いに重ならない範囲 [start, end) で呼ばれるので、
// 行ごとに別の要素へ書き込む限りロックは要らない。
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize は [0, items) を runtime.NumCPU() 個以下のチャンクに分け、
// 各チャンクについて fn(start, end) を並列に呼ぶ。全ての呼び出しが終わるまで戻らない。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := min(runtime.NumCPU(), items)
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold は items が threshold を超えるときだけ並列化する。
// threshold 以下なら fn(0, items) を1回だけ呼ぶ。
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
