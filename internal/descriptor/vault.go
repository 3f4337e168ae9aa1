// SPDX-License-Identifier: MPL-2.0

package descriptor

import "bytes"

// VaultHeader opens every Ansible Vault encrypted file
// ("$ANSIBLE_VAULT;1.1;AES256" or "$ANSIBLE_VAULT;1.2;AES256;<vault-id>").
const VaultHeader = "$ANSIBLE_VAULT"

// IsEncrypted reports whether data is an Ansible Vault encrypted file.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(VaultHeader))
}
