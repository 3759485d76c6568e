package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/stephenc/dnstemplate/config"
)

// binder resolves each configured binding and assembles the variable map
// handed to the template. A failed lookup aborts the whole pass, so the
// template never renders against a partially resolved map.
type binder struct {
	resolver Resolver
	timeout  time.Duration
	ipv6     bool
}

func (b *binder) bind(ctx context.Context, bindings []config.Binding) (map[string][]string, error) {
	vars := make(map[string][]string, len(bindings))
	for _, bnd := range bindings {
		addrs, err := b.lookup(ctx, bnd.Host)
		if err != nil {
			return nil, fmt.Errorf("could not resolve %q for variable %q: %w", bnd.Host, bnd.Name, err)
		}

		log.Debugf("%s = %s => %v", bnd.Name, bnd.Host, addrs)
		vars[bnd.Name] = addrs
	}

	return vars, nil
}

// lookup returns the address strings for one host, in resolver order.
func (b *binder) lookup(ctx context.Context, host string) ([]string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	addrs, err := b.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr.IP.To4() == nil && !b.ipv6 {
			continue
		}
		result = append(result, addr.IP.String())
	}

	return result, nil
}
