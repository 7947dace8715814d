package msgtree

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type ArchiveHDF5 struct {
	archive_id int32
	name       [NAMELEN]byte
}

type CodeHDF5 struct {
	archive_id  int32
	symbol      int32
	code_length int32
	code        [CODELEN]byte
}

type StatisticsHDF5 struct {
	archive_id    int32
	bits          int64
	chars         int64
	avg_bits      float64
	space_savings float64
}

type MessageIndexHDF5 struct {
	archive_id int32
	offset     int64
	length     int64
}

const (
	NAMELEN = 64
	CODELEN = 256
)

func convertToHdf5Name(s string) [NAMELEN]byte {
	var byteArray [NAMELEN]byte
	copy(byteArray[:], s)
	return byteArray
}

// Codes longer than CODELEN are truncated, code_length keeps the real size.
func convertToHdf5Code(s string) [CODELEN]byte {
	var byteArray [CODELEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, fmt.Errorf("error creating group %q: %w", groupName, err)
	}
	return g, nil
}

func createPropList() (*hdf5.PropList, error) {
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, err
	}
	chunks := []uint{32768}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, err
	}
	if err := plist.SetDeflate(configuration.CompressionLevel); err != nil {
		return nil, err
	}
	return plist, nil
}

// createByteArray creates an extendable one dimensional array of bytes.
func createByteArray(group *hdf5.Group, name string) (*hdf5.Dataset, error) {
	return createDataset(group, name, hdf5.T_NATIVE_UINT8)
}

// createTable creates an extendable table whose rows have the type of datatype.
func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, fmt.Errorf("error creating datatype for table %q: %w", name, err)
	}
	return createDataset(group, name, dtype)
}

func createDataset(group *hdf5.Group, name string, dtype *hdf5.Datatype) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, fmt.Errorf("error creating dataspace for %q: %w", name, err)
	}
	defer fileSpace.Close()

	plist, err := createPropList()
	if err != nil {
		return nil, fmt.Errorf("error creating property list for %q: %w", name, err)
	}
	defer plist.Close()

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, fmt.Errorf("error creating dataset %q: %w", name, err)
	}
	return dset, nil
}

// appendRows extends a one dimensional dataset holding nRows rows with data
// and returns the new number of rows.
func appendRows[T any](dataset *hdf5.Dataset, data []T, nRows int) (int, error) {
	length := uint(len(data))
	if length == 0 {
		return nRows, nil
	}
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return nRows, err
	}
	defer dataspace.Close()

	newsize := []uint{uint(nRows) + length}
	if err := dataset.Resize(newsize); err != nil {
		return nRows, err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(nRows)}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return nRows, err
	}
	if err := dataset.WriteSubset(&data, dataspace, filespace); err != nil {
		return nRows, err
	}
	return nRows + int(length), nil
}
