// SPDX-License-Identifier: MPL-2.0

package inventory

import "strings"

var nameReplacer = strings.NewReplacer(".", "_", ",", "_", "-", "_")

// NormalizeName replaces the separators Ansible rejects in group names
// ('.', ',' and '-') with '_'. It is idempotent.
func NormalizeName(name string) string {
	return nameReplacer.Replace(name)
}
