// Package loader reads delegated method definitions from YAML documents:
//
//	methods:
//	  - name: owner_name
//	    chains:
//	      - {current: {account: name}}
//	      - {guest: "@name"}
//
// Chains keep their source line so definition errors point at the file.
package loader
