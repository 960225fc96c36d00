// Package config reads and writes YAML container dumps.
//
// A dump lists the classes available in the environment and the service
// definitions with their calls and tags:
//
//	namespace: klipper_form
//	host: doctrine
//	classes:
//	  - name: App\Form\TaskType
//	    implements: [Klipper\Component\Form\Doctrine\FormTypeDoctrineAwareInterface]
//	services:
//	  - id: app.form.task
//	    class: App\Form\TaskType
//	    calls:
//	      - {method: setMailer, args: ["@app.mailer"]}
//	    tags:
//	      - {name: form.type, priority: 10}
//
// "@id" arguments become di.Reference values; "@@text" is the literal "@text".
package config
