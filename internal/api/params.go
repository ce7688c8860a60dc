package api

import (
	"net/http"
	"strconv"

	"github.com/filippobenozzi/algodomo-bridge/internal/entity"
)

// parseRef builds an entity.Ref from the query string: id takes precedence
// over address+subIndex when both are present. subIndexParam may be empty
// for entities resolved by address alone (thermostats, boards).
func parseRef(r *http.Request, subIndexParam string) (entity.Ref, bool) {
	q := r.URL.Query()
	ref := entity.Ref{ID: q.Get("id")}
	if ref.ID != "" {
		return ref, true
	}

	addrStr := q.Get("address")
	if addrStr == "" {
		return entity.Ref{}, false
	}
	address, err := strconv.Atoi(addrStr)
	if err != nil {
		return entity.Ref{}, false
	}
	ref.Address = address
	ref.HasAddress = true

	if subIndexParam == "" {
		return ref, true
	}
	subStr := q.Get(subIndexParam)
	if subStr == "" {
		return entity.Ref{}, false
	}
	sub, err := strconv.Atoi(subStr)
	if err != nil {
		return entity.Ref{}, false
	}
	ref.SubIndex = sub
	return ref, true
}

func queryInt(r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
