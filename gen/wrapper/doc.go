// Package wrapper provides generators that decorate or combine other
// generators: proxies, chains, alternatives, cycles, repetitions, skips,
// caches, arrays and collections.
//
// A wrapper owns its sources. It initializes the sources that are still in
// the created state, resets them when it is reset and closes them when it is
// closed. Depletion of a source is never an error; each wrapper translates it
// into its own composition rule.
package wrapper
