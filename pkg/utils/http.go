package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

type clientIPKey struct{}

// TrustedProxies são os proxies reversos cujos cabeçalhos X-Forwarded-For e X-Real-IP
// são aceitos. Lista vazia ignora os cabeçalhos e usa só o endereço da conexão.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies aceita IPs ou faixas CIDR
func ParseTrustedProxies(values []string) (TrustedProxies, error) {
	var proxies TrustedProxies
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				return TrustedProxies{}, fmt.Errorf("proxy confiável inválido %q: %w", value, err)
			}
			proxies.prefixes = append(proxies.prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(value)
		if err != nil {
			return TrustedProxies{}, fmt.Errorf("proxy confiável inválido %q: %w", value, err)
		}
		addr = addr.Unmap()
		proxies.prefixes = append(proxies.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return proxies, nil
}

func (p TrustedProxies) trusts(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve devolve o IP de origem. Os cabeçalhos só valem quando a conexão vem de um
// proxy confiável; o X-Forwarded-For é lido da direita para a esquerda até o primeiro
// endereço que não é proxy.
func (p TrustedProxies) Resolve(r *http.Request) string {
	remote := remoteHost(r)
	if !p.trusts(remote) {
		return remote
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		candidate := ""
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			candidate = hop
			if !p.trusts(hop) {
				return hop
			}
		}
		if candidate != "" {
			return candidate
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		if _, err := netip.ParseAddr(realIP); err == nil {
			return realIP
		}
	}

	return remote
}

// WithClientIP guarda no contexto o IP já resolvido pelo middleware
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP retorna o IP resolvido para a requisição, ou o endereço da conexão
// quando nenhum middleware o resolveu
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
