/*
Package problem is the common ground of all problem models.

A model is an immutable instance exposing a number of variables, a number of flavors for each variable,
an optimization direction and an evaluation function. Evaluating a configuration yields an objective value
and a feasibility flag: feasible evaluations always dominate infeasible ones, and two infeasible evaluations
are never comparable.

Malformed configurations (wrong length, out-of-range values) are programming errors: models panic on them.
Infeasibility, on the other hand, is data and is never reported as an error.
*/
package problem
