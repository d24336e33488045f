// Package sweeper drives periodic expiry across a set of caches.
//
// Lazy expiration alone can leave dead entries in memory indefinitely when keys
// are written once and never read again. The sweeper asks its source for every
// cache on each tick and calls Expire on each one, isolating failures so one
// bad cache never stops the others from being swept.
//
//	sw, _ := sweeper.New(reg, sweeper.WithInterval(time.Minute))
//	eg.Go(sw.Run(ctx))
package sweeper
