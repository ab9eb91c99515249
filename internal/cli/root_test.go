package cli

import "testing"

func TestVersionNotEmpty(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestExecuteVersion(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config-dir", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
	if flag := rootCmd.PersistentFlags().Lookup("config-dir"); flag != nil && flag.DefValue != "." {
		t.Errorf("config-dir default = %q, want current directory", flag.DefValue)
	}
}

func TestRegisteredCommands(t *testing.T) {
	want := map[string]bool{
		"pull": false, "search": false, "doctor": false, "stats": false, "version": false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
