// Package sample provides leaf generators that draw from explicitly given
// values: constants, fixed lists, random samples, weight tables and UUIDs.
package sample
