// Package definevalidator provides the shared vocabulary of the define.xml
// validation engine: findings, severities, layer statuses, results, options,
// and metrics.
//
// The engine validates CDISC define.xml documents through independent rule
// layers (schema conformance, structure, business rules, controlled
// terminology, completeness, method quality, and cross-reference patterns)
// and rolls their findings into one deterministic verdict. See the engine
// package for orchestration and the layer package for the rule checks.
package definevalidator
