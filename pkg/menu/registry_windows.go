//go:build windows

package menu

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryRegistrar writes the per-user context menu for folders:
// HKCU\Software\Classes\Directory\shell\<group> with one subcommand key
// per child.
type RegistryRegistrar struct{}

const shellRoot = `Software\Classes\Directory\shell`

func (RegistryRegistrar) Register(group, label string, children []Entry) error {
	groupPath := shellRoot + `\` + group
	k, _, err := registry.CreateKey(registry.CURRENT_USER, groupPath, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("creating menu key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue("MUIVerb", label); err != nil {
		return fmt.Errorf("setting menu label: %w", err)
	}
	// An empty SubCommands value tells the shell to read children from
	// the shell subkey.
	if err := k.SetStringValue("SubCommands", ""); err != nil {
		return fmt.Errorf("enabling submenu: %w", err)
	}

	for _, child := range children {
		childPath := groupPath + `\shell\` + child.Label
		ck, _, err := registry.CreateKey(registry.CURRENT_USER, childPath, registry.ALL_ACCESS)
		if err != nil {
			return fmt.Errorf("creating menu entry %s: %w", child.Label, err)
		}
		err = ck.SetStringValue("", child.Label)
		ck.Close()
		if err != nil {
			return fmt.Errorf("labeling menu entry %s: %w", child.Label, err)
		}
		cmdKey, _, err := registry.CreateKey(registry.CURRENT_USER, childPath+`\command`, registry.ALL_ACCESS)
		if err != nil {
			return fmt.Errorf("creating command key for %s: %w", child.Label, err)
		}
		err = cmdKey.SetStringValue("", child.Command)
		cmdKey.Close()
		if err != nil {
			return fmt.Errorf("setting command for %s: %w", child.Label, err)
		}
	}
	return nil
}

func (RegistryRegistrar) Unregister(group string) error {
	err := deleteTree(registry.CURRENT_USER, shellRoot+`\`+group)
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("deleting menu key: %w", err)
	}
	return nil
}

// deleteTree removes a key and everything below it. The registry API only
// deletes empty keys, so children go first.
func deleteTree(root registry.Key, path string) error {
	k, err := registry.OpenKey(root, path, registry.READ)
	if err != nil {
		return err
	}
	names, err := k.ReadSubKeyNames(-1)
	k.Close()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := deleteTree(root, path+`\`+name); err != nil {
			return err
		}
	}
	return registry.DeleteKey(root, path)
}

// DefaultRegistrar returns the platform registration backend.
func DefaultRegistrar() Registrar {
	return RegistryRegistrar{}
}
