package policies

import (
	"math"

	erand "golang.org/x/exp/rand"
)

type QTable struct {
	table map[string]map[string]float64

	rand *erand.Rand
}

func NewQTable(rand *erand.Rand) *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
		rand:  rand,
	}
}

// entries of state, created on first access
func (q *QTable) entries(state string) map[string]float64 {
	values, ok := q.table[state]
	if !ok {
		values = make(map[string]float64)
		q.table[state] = values
	}
	return values
}

// Get returns the value of action in state, storing def for unseen pairs
func (q *QTable) Get(state, action string, def float64) float64 {
	values := q.entries(state)
	val, ok := values[action]
	if !ok {
		values[action] = def
		val = def
	}
	return val
}

func (q *QTable) Set(state, action string, val float64) {
	q.entries(state)[action] = val
}

func (q *QTable) Size() int {
	return len(q.table)
}

// MaxAmong returns the best of the given actions, ties are broken at random.
// Unseen entries are initialised to def.
func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if len(actions) == 0 {
		return "", def
	}
	maxActions := make([]string, 0)
	maxVal := math.Inf(-1)
	for _, a := range actions {
		val := q.Get(state, a, def)
		if val > maxVal {
			maxActions = maxActions[:0]
			maxVal = val
		}
		if val == maxVal {
			maxActions = append(maxActions, a)
		}
	}

	return maxActions[q.rand.Intn(len(maxActions))], maxVal
}
