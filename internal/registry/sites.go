package registry

import (
	"sort"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// DeriveSites groups units by exact (latitude, longitude) equality as stored
// in the registry; there is no distance tolerance. A group of size one is a
// single-unit site; larger groups get a unit-count badge equal to the group
// size. Sites are ordered by coordinates so output is stable across runs.
func DeriveSites(units []domain.ReactorUnit) []domain.Site {
	groups := make(map[domain.Coordinates][]domain.ReactorUnit)
	for _, u := range units {
		groups[u.Coordinates] = append(groups[u.Coordinates], u)
	}

	sites := make([]domain.Site, 0, len(groups))
	for coords, members := range groups {
		site := domain.Site{
			Coordinates: coords,
			UnitCount:   len(members),
		}
		for _, m := range members {
			site.CapacityMWe += m.CapacityMWe
			site.UnitNames = append(site.UnitNames, m.Name)
		}
		sort.Strings(site.UnitNames)
		sites = append(sites, site)
	}

	sort.Slice(sites, func(i, j int) bool {
		a, b := sites[i].Coordinates, sites[j].Coordinates
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		return a.Longitude < b.Longitude
	})

	return sites
}
