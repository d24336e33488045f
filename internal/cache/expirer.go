package cache

// Expirer is the view of a cache a periodic sweep driver needs.
// *Cache implements it for any key and value type.
type Expirer interface {
	Name() string
	Expire() (int, error)
}

var _ Expirer = (*Cache[string, any])(nil)
