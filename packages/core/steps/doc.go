// Package steps holds the user-supplied side of a run: step definitions
// and scenario hooks, loaded from *.steps.yaml files in the base
// directory.
//
// A definition file looks like:
//
//	steps:
//	  - pattern: 'a registered user "([^"]+)"'
//	    run: ./scripts/create_user.sh
//	  - pattern: 'the API reports (\d+) users'
//	    run: curl -s localhost:8080/stats
//	    expect_json:
//	      path: users.total
//	      equals: "42"
//	hooks:
//	  before_scenario:
//	    - ./scripts/reset_db.sh
//	  after_scenario:
//	    - ./scripts/cleanup.sh
//
// Registries are plain values passed around explicitly; nothing is
// registered through import side effects.
package steps
